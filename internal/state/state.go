// Package state holds the client's in-memory application state. An AppState
// is created once per client run and passed to every workflow; nothing in it
// is global.
package state

import (
	"slices"
	"storefront-client/internal/model"
	"sync"
)

// Panel is the view section currently shown.
type Panel string

const (
	PanelCatalog Panel = "catalog"
	PanelMember  Panel = "member"
)

type AppState struct {
	mu sync.RWMutex

	session  model.Session
	category model.Category
	contents []model.ContentItem
	orders   []model.Order
	stats    *model.OrderStats
	panel    Panel
}

func New() *AppState {
	return &AppState{
		category: model.CategoryAll,
		panel:    PanelCatalog,
	}
}

func (s *AppState) Session() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.session)
}

func (s *AppState) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// SetSession installs both halves of a session. A half-empty session is
// stored as anonymous.
func (s *AppState) SetSession(token string, user *model.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" || user == nil {
		s.session = model.Session{}
		return
	}
	u := *user
	s.session = model.Session{Token: token, User: &u}
}

// ClearSession drops the session together with the user's order data.
func (s *AppState) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = model.Session{}
	s.orders = nil
	s.stats = nil
}

func (s *AppState) Category() model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.category
}

func (s *AppState) SetCategory(c model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = c
}

func (s *AppState) Contents() []model.ContentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.contents)
}

// ReplaceContents swaps the whole catalog cache.
func (s *AppState) ReplaceContents(items []model.ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents = slices.Clone(items)
}

func (s *AppState) FindContent(id int64) (model.ContentItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.contents {
		if c.ID == id {
			return c, true
		}
	}
	return model.ContentItem{}, false
}

func (s *AppState) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orders)
}

// ReplaceOrders swaps the whole order cache.
func (s *AppState) ReplaceOrders(orders []model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = slices.Clone(orders)
}

// PutOrder replaces the cached order with the same id, or prepends it.
func (s *AppState) PutOrder(o model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == o.ID {
			s.orders[i] = o
			return
		}
	}
	s.orders = append([]model.Order{o}, s.orders...)
}

func (s *AppState) FindOrder(id int64) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

func (s *AppState) Stats() *model.OrderStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return nil
	}
	st := *s.stats
	return &st
}

func (s *AppState) SetStats(st *model.OrderStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st == nil {
		s.stats = nil
		return
	}
	c := *st
	s.stats = &c
}

func (s *AppState) Panel() Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.panel
}

func (s *AppState) SetPanel(p Panel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel = p
}

func copySession(sess model.Session) model.Session {
	if sess.User == nil {
		return sess
	}
	u := *sess.User
	return model.Session{Token: sess.Token, User: &u}
}
