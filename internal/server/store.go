package server

import (
	"errors"
	"slices"
	"storefront-client/internal/model"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	errUserExists      = errors.New("username already exists")
	errBadCredentials  = errors.New("wrong username or password")
	errContentNotFound = errors.New("content does not exist")
	errOrderNotFound   = errors.New("order does not exist")
	errNotPending      = errors.New("order is not awaiting payment")
)

type user struct {
	id       int64
	password string
	profile  model.UserProfile
}

type order struct {
	id        int64
	userID    int64
	contentID int64
	status    model.PaymentStatus
	paidAt    *time.Time
}

// Store is the fake service's data. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	users    map[string]*user
	tokens   map[string]int64
	contents []model.ContentItem
	orders   []*order
	nextUser int64
	nextOrd  int64
	now      func() time.Time
}

func NewStore(contents ...model.ContentItem) *Store {
	return &Store{
		users:    make(map[string]*user),
		tokens:   make(map[string]int64),
		contents: slices.Clone(contents),
		now:      time.Now,
	}
}

func (s *Store) Register(username, password string, level model.MembershipLevel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return errUserExists
	}
	if level == "" {
		level = model.MembershipNormal
	}
	s.nextUser++
	s.users[username] = &user{
		id:       s.nextUser,
		password: password,
		profile:  model.UserProfile{ID: s.nextUser, Username: username, MembershipLevel: level},
	}
	return nil
}

func (s *Store) Login(username, password string) (string, model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok || u.password != password {
		return "", model.UserProfile{}, errBadCredentials
	}
	token := uuid.NewString()
	s.tokens[token] = u.id
	return token, u.profile, nil
}

func (s *Store) ResolveToken(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	return id, ok
}

// RevokeTokens invalidates every issued token, as an expiry would.
func (s *Store) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.tokens)
}

func (s *Store) Contents(contentType string) []model.ContentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contentType == "" {
		return slices.Clone(s.contents)
	}
	var out []model.ContentItem
	for _, c := range s.contents {
		if string(c.Type) == contentType {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) CreateOrder(userID, contentID int64) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.content(contentID); !ok {
		return model.Order{}, errContentNotFound
	}
	s.nextOrd++
	o := &order{id: s.nextOrd, userID: userID, contentID: contentID, status: model.PaymentPending}
	s.orders = append(s.orders, o)
	return s.view(o), nil
}

func (s *Store) Pay(userID, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.order(userID, orderID)
	if !ok {
		return errOrderNotFound
	}
	if o.status != model.PaymentPending {
		return errNotPending
	}
	now := s.now().UTC()
	o.status = model.PaymentPaid
	o.paidAt = &now
	return nil
}

// SetStatus forces a server-side status change such as a refund.
func (s *Store) SetStatus(orderID int64, status model.PaymentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.id == orderID {
			o.status = status
		}
	}
}

func (s *Store) Order(userID, orderID int64) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.order(userID, orderID)
	if !ok {
		return model.Order{}, errOrderNotFound
	}
	return s.view(o), nil
}

// Orders lists a user's orders, newest first.
func (s *Store) Orders(userID int64) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].userID == userID {
			out = append(out, s.view(s.orders[i]))
		}
	}
	return out
}

func (s *Store) Stats(userID int64) model.OrderStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	var st model.OrderStats
	for _, o := range s.orders {
		if o.userID != userID {
			continue
		}
		st.TotalOrders++
		if o.status == model.PaymentPaid {
			st.PaidOrders++
		}
	}
	return st
}

func (s *Store) content(id int64) (model.ContentItem, bool) {
	for _, c := range s.contents {
		if c.ID == id {
			return c, true
		}
	}
	return model.ContentItem{}, false
}

func (s *Store) order(userID, orderID int64) (*order, bool) {
	for _, o := range s.orders {
		if o.id == orderID && o.userID == userID {
			return o, true
		}
	}
	return nil, false
}

func (s *Store) view(o *order) model.Order {
	out := model.Order{
		ID:            o.id,
		ContentID:     o.contentID,
		PaymentStatus: o.status,
	}
	if o.paidAt != nil {
		out.PaymentTime = &model.Timestamp{Time: *o.paidAt}
	}
	if c, ok := s.content(o.contentID); ok {
		out.Content = &c
	}
	return out
}
