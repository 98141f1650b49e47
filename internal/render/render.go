// Package render turns Application State and freshly fetched snapshots into
// HTML fragments, one per page region. Renderers only read state; the one
// side effect they have is replacing chart handles in the state's registry.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"familyspend/internal/chart"
	"familyspend/internal/core"
	"familyspend/internal/i18n"
	applog "familyspend/internal/log"
	"familyspend/internal/state"
)

// Renderer executes the region templates.
type Renderer struct {
	templates *template.Template
	logger    *applog.Logger
	now       func() time.Time
}

// New parses the region templates from fsys (templates/*.html).
func New(fsys fs.FS, logger *applog.Logger) (*Renderer, error) {
	t, err := template.New("regions").Funcs(Funcs()).ParseFS(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{
		templates: t,
		logger:    logger.WithComponent(applog.ComponentRender),
		now:       time.Now,
	}, nil
}

// Templates exposes the parsed set so the page can be composed with it.
func (r *Renderer) Templates() *template.Template { return r.templates }

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":     i18n.FormatMoney,
		"date":      i18n.FormatDate,
		"shortDate": i18n.FormatShortDate,
		"dateRange": i18n.FormatRange,
		"percent":   i18n.FormatPercent,
		"billing":   i18n.BillingCaption,
	}
}

type base struct {
	L     i18n.Translator
	Lang  i18n.Language
	Theme core.Theme
}

func baseOf(s state.Reader) base {
	return base{L: i18n.Translator{Lang: s.Language()}, Lang: s.Language(), Theme: s.Theme()}
}

func (r *Renderer) paint(surf Surface, region Region, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, string(region), data); err != nil {
		r.logger.Error("Template execution failed", applog.FieldOperation, applog.OpRender, "region", region, applog.FieldError, err)
		return fmt.Errorf("render %s: %w", region, err)
	}
	surf.Paint(region, template.HTML(buf.String()))
	return nil
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

func id(v core.ID) string { return fmt.Sprint(int64(v)) }

func profileOptions(s state.Reader, selected core.ID, ok bool) []option {
	var out []option
	for _, p := range s.Profiles() {
		out = append(out, option{Value: id(p.ID), Label: p.DisplayName, Selected: ok && p.ID == selected})
	}
	return out
}

func chartValue(lang i18n.Language) func(float64) string {
	return func(v float64) string { return i18n.FormatMoney(lang, core.NewMoney(v)) }
}

func points(lang i18n.Language, rows []core.CategoryAmount) []chart.Point {
	out := make([]chart.Point, 0, len(rows))
	for _, c := range rows {
		f, _ := c.Amount.Float64()
		out = append(out, chart.Point{Label: c.Label(string(lang)), Value: f})
	}
	return out
}

// replaceChart draws cfg into slot, or releases the slot when there is
// nothing to draw. It returns the SVG to embed.
func (r *Renderer) replaceChart(s state.Reader, slot chart.Slot, cfg chart.Config) template.HTML {
	if len(cfg.Points) == 0 {
		s.Charts().Release(slot)
		return ""
	}
	c, err := s.Charts().Replace(slot, func() (chart.Config, error) { return cfg, nil })
	switch {
	case errors.Is(err, chart.ErrNoPoints):
		return ""
	case err != nil:
		r.logger.Warn("Chart build failed", applog.FieldSlot, slot, applog.FieldError, err)
		return ""
	}
	return c.SVG()
}
