package render

import (
	"html/template"
	"sync"
)

// Region names an addressable area of the page. The value is the element id.
type Region string

const (
	RegionChrome        Region = "chrome"
	RegionNav           Region = "nav"
	RegionProfileSelect Region = "profile-select"
	RegionPeriodTabs    Region = "period-tabs"
	RegionDashboard     Region = "dashboard"
	RegionExpenseForm   Region = "expense-form"
	RegionReportFilters Region = "report-filters"
	RegionExpenseList   Region = "expense-list"
	RegionFamily        Region = "family-modal"
	RegionCardGrid      Region = "card-grid"
	RegionCardForm      Region = "card-form"
	RegionCardDetail    Region = "card-modal"
	RegionSettings      Region = "settings"
	RegionConfirm       Region = "confirm-dialog"
)

// Regions lists every region in page order.
func Regions() []Region {
	return []Region{
		RegionChrome, RegionNav, RegionProfileSelect, RegionPeriodTabs, RegionDashboard,
		RegionExpenseForm, RegionReportFilters, RegionExpenseList, RegionFamily,
		RegionCardGrid, RegionCardForm, RegionCardDetail, RegionSettings, RegionConfirm,
	}
}

// Surface receives rendered regions.
type Surface interface {
	Paint(region Region, fragment template.HTML)
}

// Frame is a Surface that keeps the latest fragment per region and the
// order in which regions were first painted.
type Frame struct {
	mu    sync.Mutex
	order []Region
	parts map[Region]template.HTML
}

func NewFrame() *Frame {
	return &Frame{parts: make(map[Region]template.HTML)}
}

func (f *Frame) Paint(region Region, fragment template.HTML) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.parts[region]; !ok {
		f.order = append(f.order, region)
	}
	f.parts[region] = fragment
}

// Painted lists the regions painted so far, first paint first.
func (f *Frame) Painted() []Region {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Region(nil), f.order...)
}

// Get returns the latest fragment for region.
func (f *Frame) Get(region Region) (template.HTML, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.parts[region]
	return h, ok
}

// Map returns the fragments keyed by element id, for page templates.
func (f *Frame) Map() map[string]template.HTML {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]template.HTML, len(f.parts))
	for r, h := range f.parts {
		out[string(r)] = h
	}
	return out
}
