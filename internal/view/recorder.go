package view

import (
	"slices"
	"storefront-client/internal/model"
	"storefront-client/internal/state"
	"sync"
)

// Recorder is a View that remembers what it was asked to show.
type Recorder struct {
	mu sync.Mutex

	Catalog      []model.ContentItem
	Orders       []model.Order
	Session      model.Session
	Profile      *model.UserProfile
	Stats        *model.OrderStats
	Panel        state.Panel
	CatalogState string // "items", "empty", "error"
	OrdersState  string
	LoginPrompts int
	Calls        []string
}

func (r *Recorder) record(call string) {
	r.Calls = append(r.Calls, call)
}

func (r *Recorder) RenderCatalog(items []model.ContentItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("RenderCatalog")
	r.Catalog = slices.Clone(items)
	r.CatalogState = "items"
}

func (r *Recorder) RenderCatalogEmpty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("RenderCatalogEmpty")
	r.Catalog = nil
	r.CatalogState = "empty"
}

func (r *Recorder) RenderCatalogError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("RenderCatalogError")
	r.CatalogState = "error"
}

func (r *Recorder) RenderOrders(orders []model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("RenderOrders")
	r.Orders = slices.Clone(orders)
	r.OrdersState = "items"
}

func (r *Recorder) RenderOrdersEmpty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("RenderOrdersEmpty")
	r.Orders = nil
	r.OrdersState = "empty"
}

func (r *Recorder) RenderOrdersError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("RenderOrdersError")
	r.OrdersState = "error"
}

func (r *Recorder) RenderAuthStatus(session model.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("RenderAuthStatus")
	r.Session = session
}

func (r *Recorder) RenderProfile(user model.UserProfile, stats *model.OrderStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("RenderProfile")
	r.Profile = &user
	r.Stats = stats
}

func (r *Recorder) PromptLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("PromptLogin")
	r.LoginPrompts++
}

func (r *Recorder) ShowPanel(panel state.Panel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ShowPanel")
	r.Panel = panel
}
