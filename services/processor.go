package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"setmore-schedules/config"
	"setmore-schedules/models"
	"setmore-schedules/utils"
)

// Processor owns one uploaded booking export and derives its reports.
// Both tables are fixed at construction, so every method is safe to call
// repeatedly and from several goroutines.
type Processor struct {
	logger  *utils.Logger
	profile config.EventProfile
	batchID uuid.UUID
	raw     []models.RawBooking
	data    []models.Booking
}

// NewProcessor cleans raw immediately and fails if any row is malformed.
// The rows are copied; later changes to raw do not affect the processor.
func NewProcessor(raw []models.RawBooking, profile config.EventProfile, logger *utils.Logger) (*Processor, error) {
	profile = profile.WithDefaults()
	owned := make([]models.RawBooking, len(raw))
	for i, r := range raw {
		owned[i] = r.Clone()
	}

	data, err := NewCleaner(logger, profile).Clean(owned)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		logger:  logger,
		profile: profile,
		batchID: uuid.New(),
		raw:     owned,
		data:    data,
	}
	logger.Info("[processor] Batch %s for %q: %d raw rows, %d confirmed bookings",
		p.batchID, profile.Name, len(raw), len(data))
	return p, nil
}

// ProcessorFor looks up the profile of event and builds a Processor from it.
func ProcessorFor(event string, profiles config.Profiles, raw []models.RawBooking, logger *utils.Logger) (*Processor, error) {
	profile, ok := profiles[event]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return NewProcessor(raw, profile, logger)
}

// BatchID identifies this upload.
func (p *Processor) BatchID() uuid.UUID {
	return p.batchID
}

// Event returns the name of the profile the processor was built with.
func (p *Processor) Event() string {
	return p.profile.Name
}

// Data returns a copy of the cleaned bookings in input order.
func (p *Processor) Data() []models.Booking {
	out := make([]models.Booking, len(p.data))
	copy(out, p.data)
	return out
}

// Bars returns the bar schedule: every category except the BBQ spellings,
// one column per category in profile order.
func (p *Processor) Bars() *models.Schedule {
	order := CategoryOrder(p.profile.CategoryOrder)
	if order == nil {
		order = CategoryOrder{}
	}
	return BuildSchedule(p.data, NotInCategories(p.profile.BBQCategories...), order)
}

// BBQ returns the single-column BBQ sign-up schedule.
func (p *Processor) BBQ() *models.Schedule {
	return BuildSchedule(p.data, InCategories(p.profile.BBQCategories...), nil)
}

// ShirtSizeSummary counts shirt sizes over every raw row, confirmed or not.
func (p *Processor) ShirtSizeSummary() []models.ValueCount {
	return Summarize(p.raw, p.profile.ShirtSizeField)
}

// DateRange returns the earliest and latest booking timestamps.
// ok is false when there are no confirmed bookings.
func (p *Processor) DateRange() (first, last time.Time, ok bool) {
	for i, b := range p.data {
		if i == 0 || b.Timestamp.Before(first) {
			first = b.Timestamp
		}
		if i == 0 || b.Timestamp.After(last) {
			last = b.Timestamp
		}
	}
	return first, last, len(p.data) > 0
}

// Reports computes the three reports on up to workers goroutines.
func (p *Processor) Reports(ctx context.Context, workers int) (*models.Reports, error) {
	reports := &models.Reports{}
	pool := utils.NewWorkerPool(workers)

	pool.Submit(ctx, func(context.Context) error {
		reports.Bars = p.Bars()
		return nil
	})
	pool.Submit(ctx, func(context.Context) error {
		reports.BBQ = p.BBQ()
		return nil
	})
	pool.Submit(ctx, func(context.Context) error {
		reports.ShirtSizes = p.ShirtSizeSummary()
		return nil
	})

	if err := pool.Wait(); err != nil {
		return nil, fmt.Errorf("processor: build reports: %w", err)
	}
	return reports, nil
}
