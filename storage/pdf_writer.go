package storage

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"setmore-schedules/models"
	"setmore-schedules/utils"
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"date": func(t time.Time) string { return t.Format("Monday 2 Jan") },
}).Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Event}}</title>
<style>
body { font-family: sans-serif; margin: 24px; }
table { border-collapse: collapse; margin-bottom: 16px; }
th, td { border: 1px solid #999; padding: 4px 8px; text-align: left; }
th { background: #eee; }
</style></head>
<body>
<h1>{{.Event}} bookings</h1>
{{range .Schedules}}
<h2>{{.Title}}</h2>
{{$s := .Schedule}}
{{range $s.Days}}
<h3>{{date .}}</h3>
<table>
<tr><th>Time</th>{{range $s.Columns}}<th>{{.}}</th>{{end}}</tr>
{{range ($s.OnDate .).Rows}}<tr><td>{{.Time}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{else}}<p>No bookings</p>{{end}}
{{end}}
<h2>T-shirts</h2>
<table>
<tr><th>Size</th><th>Count</th></tr>
{{range .ShirtSizes}}<tr><td>{{if .Value}}{{.Value}}{{else}}(none){{end}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
</body></html>
`))

type reportView struct {
	Event      string
	Schedules  []scheduleView
	ShirtSizes []models.ValueCount
}

type scheduleView struct {
	Title    string
	Schedule *models.Schedule
}

// RenderHTML writes the printable report for an export.
func RenderHTML(w io.Writer, e *Export) error {
	view := reportView{Event: e.Event, ShirtSizes: e.Reports.ShirtSizes}
	for _, s := range scheduleSheets(e) {
		view.Schedules = append(view.Schedules, scheduleView{Title: s.title, Schedule: s.schedule})
	}
	if err := reportTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("pdf: render html: %w", err)
	}
	return nil
}

// PDFWriter prints the HTML report to PDF with a headless Chrome.
type PDFWriter struct {
	path      string
	chromeBin string
	timeout   time.Duration
	logger    *utils.Logger
}

func NewPDFWriter(path, chromeBin string, logger *utils.Logger) (*PDFWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("pdf: create output dir: %w", err)
	}
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &PDFWriter{path: path, chromeBin: chromeBin, timeout: 60 * time.Second, logger: logger}, nil
}

func (p *PDFWriter) Write(ctx context.Context, e *Export) error {
	var html strings.Builder
	if err := RenderHTML(&html, e); err != nil {
		return err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.chromeBin != "" {
		p.logger.Debug("[pdf] Using browser binary: %s", p.chromeBin)
		opts = append(opts, chromedp.ExecPath(p.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, p.timeout)
	defer cancelTimeout()

	var pdf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html.String()).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("pdf: chromedp run failed: %w", err)
	}

	if err := os.WriteFile(p.path, pdf, 0644); err != nil {
		return fmt.Errorf("pdf: write %q: %w", p.path, err)
	}
	p.logger.Info("[pdf] Report printed to %s (%d bytes)", p.path, len(pdf))
	return nil
}

func (p *PDFWriter) Close() error {
	return nil
}

func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
