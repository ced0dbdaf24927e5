package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"setmore-schedules/models"
)

// DefaultEvent is the event processed when none is configured.
const DefaultEvent = "Beer Festival"

// DefaultDateLayouts are tried in order when parsing the appointment date column.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"01/02/2006",
	"1/2/2006",
}

// EventProfile describes how the bookings of one event are split into reports.
type EventProfile struct {
	// Name is the label the uploader selects, e.g. "Beer Festival".
	Name string `yaml:"name" json:"name"`

	// CategoryOrder ranks the bar categories; it controls column order of the bar schedule.
	CategoryOrder map[string]int `yaml:"category_order" json:"category_order"`

	// BBQCategories are the exact spellings routed to the BBQ schedule instead of the bars.
	BBQCategories []string `yaml:"bbq_categories" json:"bbq_categories"`

	// ShirtSizeField is the raw column counted by the shirt-size summary.
	ShirtSizeField string `yaml:"shirt_size_field" json:"shirt_size_field"`

	// DateLayouts override DefaultDateLayouts for the appointment date column.
	DateLayouts []string `yaml:"date_layouts,omitempty" json:"date_layouts,omitempty"`
}

// Profiles indexes event profiles by name.
type Profiles map[string]EventProfile

type profilesFile struct {
	Events []EventProfile `yaml:"events"`
}

// BeerFestival returns the built-in beer festival profile.
func BeerFestival() EventProfile {
	return EventProfile{
		Name: DefaultEvent,
		CategoryOrder: map[string]int{
			"Beer":   0,
			"Cider":  1,
			"Ticket": 2,
			"Gin":    3,
		},
		BBQCategories:  []string{"BBQ", "bbq"},
		ShirtSizeField: models.FieldShirtSize,
		DateLayouts:    DefaultDateLayouts,
	}
}

// WithDefaults fills the shirt-size column and date layouts when they are unset.
func (p EventProfile) WithDefaults() EventProfile {
	if p.ShirtSizeField == "" {
		p.ShirtSizeField = models.FieldShirtSize
	}
	if len(p.DateLayouts) == 0 {
		p.DateLayouts = DefaultDateLayouts
	}
	return p
}

// DefaultProfiles returns the built-in profiles.
func DefaultProfiles() Profiles {
	p := BeerFestival()
	return Profiles{p.Name: p}
}

// LoadProfiles returns the built-in profiles overlaid with the events defined
// in the YAML file at path. An empty path yields the built-ins only.
func LoadProfiles(path string) (Profiles, error) {
	profiles := DefaultProfiles()
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read events file %q: %w", path, err)
	}
	return parseProfiles(data, profiles)
}

func parseProfiles(data []byte, profiles Profiles) (Profiles, error) {
	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse events file: %w", err)
	}

	for i, p := range file.Events {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("config: event #%d: %w", i+1, errors.New("name is required"))
		}
		profiles[p.Name] = p.WithDefaults()
	}
	return profiles, nil
}

// Names returns the configured event names, sorted.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
