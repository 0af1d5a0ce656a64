package state

import (
	"storefront-client/internal/model"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	s := New()

	assert.Equal(t, model.CategoryAll, s.Category())
	assert.Equal(t, PanelCatalog, s.Panel())
	assert.False(t, s.Session().Authenticated())
	assert.Empty(t, s.Contents())
	assert.Empty(t, s.Orders())
	assert.Nil(t, s.Stats())
}

func TestSetSessionRequiresBothHalves(t *testing.T) {
	s := New()

	s.SetSession("tok", nil)
	assert.Equal(t, model.Session{}, s.Session())

	s.SetSession("", &model.UserProfile{Username: "a"})
	assert.Equal(t, model.Session{}, s.Session())

	s.SetSession("tok", &model.UserProfile{Username: "a"})
	sess := s.Session()
	require.True(t, sess.Authenticated())
	assert.Equal(t, "a", sess.User.Username)
	assert.Equal(t, "tok", s.Token())
}

func TestSessionReturnsCopy(t *testing.T) {
	s := New()
	s.SetSession("tok", &model.UserProfile{Username: "a"})

	sess := s.Session()
	sess.User.Username = "mutated"

	assert.Equal(t, "a", s.Session().User.Username)
}

func TestClearSessionDropsOrders(t *testing.T) {
	s := New()
	s.SetSession("tok", &model.UserProfile{Username: "a"})
	s.ReplaceOrders([]model.Order{{ID: 1}})
	s.SetStats(&model.OrderStats{TotalOrders: 1})

	s.ClearSession()

	assert.False(t, s.Session().Authenticated())
	assert.Empty(t, s.Orders())
	assert.Nil(t, s.Stats())
}

func TestReplaceContentsIsWholesale(t *testing.T) {
	s := New()
	s.ReplaceContents([]model.ContentItem{{ID: 1}, {ID: 2}})
	s.ReplaceContents([]model.ContentItem{{ID: 3, Price: decimal.NewFromInt(4)}})

	items := s.Contents()
	require.Len(t, items, 1)
	assert.EqualValues(t, 3, items[0].ID)

	_, ok := s.FindContent(1)
	assert.False(t, ok)
	c, ok := s.FindContent(3)
	require.True(t, ok)
	assert.True(t, c.Price.Equal(decimal.NewFromInt(4)))
}

func TestPutOrder(t *testing.T) {
	s := New()
	s.ReplaceOrders([]model.Order{
		{ID: 1, PaymentStatus: model.PaymentPending},
		{ID: 2, PaymentStatus: model.PaymentPending},
	})

	s.PutOrder(model.Order{ID: 2, PaymentStatus: model.PaymentPaid})
	s.PutOrder(model.Order{ID: 3, PaymentStatus: model.PaymentPending})

	orders := s.Orders()
	require.Len(t, orders, 3)
	assert.EqualValues(t, 3, orders[0].ID)
	o, ok := s.FindOrder(2)
	require.True(t, ok)
	assert.Equal(t, model.PaymentPaid, o.PaymentStatus)
}

func TestConcurrentMutation(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.ReplaceContents([]model.ContentItem{{ID: int64(i)}, {ID: int64(i)}})
			_ = s.Contents()
		}(i)
	}
	wg.Wait()

	items := s.Contents()
	require.Len(t, items, 2)
	assert.Equal(t, items[0].ID, items[1].ID)
}
