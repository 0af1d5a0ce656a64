package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"storefront-client/internal/apperr"
	"storefront-client/internal/client"
	"storefront-client/internal/dto"
	"storefront-client/internal/model"
	"storefront-client/internal/notify"
	"storefront-client/internal/state"
	"storefront-client/internal/view"

	"github.com/sirupsen/logrus"
)

// Confirmer answers the yes/no questions a purchase pauses on.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type OrderService interface {
	// BeginPurchase checks the session and the catalog cache without any
	// network call and returns a checkout awaiting order confirmation.
	BeginPurchase(contentID int64) (*Checkout, error)
	// Purchase runs a whole checkout, asking confirm before each step. A
	// declined step stops the checkout with a nil error.
	Purchase(ctx context.Context, contentID int64, confirm Confirmer) (*model.Order, error)
	// Pay pays an existing order and refreshes its cache entry from the
	// server, falling back to reloading the whole order list. The returned
	// order is nil when the payment went through but neither refresh worked.
	Pay(ctx context.Context, orderID int64) (*model.Order, error)
	LoadOrders(ctx context.Context) error
	LoadStats(ctx context.Context) error
}

type orderServiceImpl struct {
	api      client.APIClient
	state    *state.AppState
	notifier notify.Notifier
	view     view.View
	logger   logrus.FieldLogger
}

func NewOrderService(
	api client.APIClient,
	appState *state.AppState,
	notifier notify.Notifier,
	v view.View,
	logger logrus.FieldLogger,
) OrderService {
	return &orderServiceImpl{
		api:      api,
		state:    appState,
		notifier: notifier,
		view:     v,
		logger:   logger,
	}
}

func (s *orderServiceImpl) BeginPurchase(contentID int64) (*Checkout, error) {
	if !s.state.Session().Authenticated() {
		s.notifier.Notify("Please log in first", notify.Warning)
		s.view.PromptLogin()
		return nil, apperr.ErrLoginRequired
	}

	item, ok := s.state.FindContent(contentID)
	if !ok {
		s.notifier.Notify("Content does not exist", notify.Danger)
		return nil, &apperr.Error{
			Kind:    apperr.KindNotFoundLocal,
			Message: fmt.Sprintf("content %d is not in the catalog", contentID),
		}
	}

	return &Checkout{svc: s, item: item, stage: StageConfirmOrder}, nil
}

func (s *orderServiceImpl) Purchase(ctx context.Context, contentID int64, confirm Confirmer) (*model.Order, error) {
	checkout, err := s.BeginPurchase(contentID)
	if err != nil {
		return nil, err
	}

	yes, err := confirm.Confirm(ctx, checkout.Summary())
	if err != nil || !yes {
		checkout.Decline()
		return nil, err
	}

	order, err := checkout.ConfirmOrder(ctx)
	if err != nil {
		return nil, err
	}

	yes, err = confirm.Confirm(ctx, checkout.PaymentPrompt())
	if err != nil || !yes {
		checkout.Decline()
		return order, err
	}

	paid, err := checkout.ConfirmPayment(ctx)
	if err != nil {
		return order, err
	}
	if paid == nil {
		return order, nil
	}
	return paid, nil
}

func (s *orderServiceImpl) createOrder(ctx context.Context, item model.ContentItem) (*model.Order, error) {
	resp, err := s.api.Request(ctx, http.MethodPost, "/order", &dto.CreateOrderRequest{ContentID: item.ID})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if !resp.Success {
		return nil, reject(s.notifier, resp, "Purchase failed")
	}

	var order model.Order
	switch {
	case resp.HasData():
		if err := resp.DecodeData(&order); err != nil {
			return nil, &apperr.Error{Kind: apperr.KindUnknown, Message: "decode order", Err: err}
		}
	case resp.OrderID != 0:
		order.ID = resp.OrderID
	default:
		return nil, &apperr.Error{Kind: apperr.KindUnknown, Message: "order response carries no order id"}
	}

	// the order keeps the item as it was sold
	if order.Content == nil {
		snapshot := item
		order.Content = &snapshot
	}
	if order.ContentID == 0 {
		order.ContentID = item.ID
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = model.PaymentPending
	}

	s.state.PutOrder(order)
	s.logger.WithFields(logrus.Fields{"order_id": order.ID, "content_id": item.ID}).Info("order created")
	s.notifier.Notify("Order created", notify.Success)
	return &order, nil
}

func (s *orderServiceImpl) Pay(ctx context.Context, orderID int64) (*model.Order, error) {
	resp, err := s.api.Request(ctx, http.MethodPost, fmt.Sprintf("/order/%d/pay", orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("pay order %d: %w", orderID, err)
	}
	if !resp.Success {
		return nil, reject(s.notifier, resp, "Payment failed")
	}

	s.logger.WithField("order_id", orderID).Info("order paid")
	s.notifier.Notify("Payment successful", notify.Success)

	order, err := s.fetchOrder(ctx, orderID)
	if err == nil {
		s.state.PutOrder(*order)
		return order, nil
	}
	s.logger.WithError(err).WithField("order_id", orderID).Warn("refresh paid order, reloading order list")

	if err := s.LoadOrders(ctx); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("reload orders after payment")
		return nil, nil
	}
	if refreshed, ok := s.state.FindOrder(orderID); ok {
		return &refreshed, nil
	}
	return nil, nil
}

func (s *orderServiceImpl) fetchOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	resp, err := s.api.Request(ctx, http.MethodGet, fmt.Sprintf("/order/%d", orderID), nil)
	if err != nil {
		return nil, err
	}
	if !resp.Success || !resp.HasData() {
		return nil, errors.New("order refresh returned no data")
	}

	var order model.Order
	if err := resp.DecodeData(&order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	s.fillContent(&order)
	return &order, nil
}

func (s *orderServiceImpl) LoadOrders(ctx context.Context) error {
	if !s.state.Session().Authenticated() {
		return nil
	}

	resp, err := s.api.Request(ctx, http.MethodGet, "/order", nil)
	if err != nil {
		s.view.RenderOrdersError()
		return fmt.Errorf("load orders: %w", err)
	}

	if !resp.Success || !resp.HasData() {
		s.state.ReplaceOrders(nil)
		s.view.RenderOrdersEmpty()
		return nil
	}

	var orders []model.Order
	if err := resp.DecodeData(&orders); err != nil {
		notice := apperr.NoticeFor(apperr.KindUnknown)
		s.notifier.Notify(notice.Message, notice.Severity)
		s.view.RenderOrdersError()
		return &apperr.Error{Kind: apperr.KindUnknown, Message: "decode orders", Err: err}
	}
	for i := range orders {
		s.fillContent(&orders[i])
	}

	s.state.ReplaceOrders(orders)
	s.view.RenderOrders(s.state.Orders())
	return nil
}

func (s *orderServiceImpl) LoadStats(ctx context.Context) error {
	if !s.state.Session().Authenticated() {
		return nil
	}

	resp, err := s.api.Request(ctx, http.MethodGet, "/order/stats", nil)
	if err != nil {
		return fmt.Errorf("load order stats: %w", err)
	}
	if !resp.Success || !resp.HasData() {
		s.state.SetStats(nil)
		return nil
	}

	var stats model.OrderStats
	if err := resp.DecodeData(&stats); err != nil {
		return &apperr.Error{Kind: apperr.KindUnknown, Message: "decode order stats", Err: err}
	}
	s.state.SetStats(&stats)
	return nil
}

// fillContent resolves an order that only names its content id against the
// catalog cache, for display.
func (s *orderServiceImpl) fillContent(o *model.Order) {
	if o.Content != nil || o.ContentID == 0 {
		return
	}
	if item, ok := s.state.FindContent(o.ContentID); ok {
		o.Content = &item
	}
}
