package service

import (
	"context"
	"errors"
	"fmt"
	"storefront-client/internal/model"
)

type Stage int

const (
	StageConfirmOrder Stage = iota
	StageConfirmPayment
	StagePaid
	StageHalted
)

var ErrCheckoutStage = errors.New("checkout is not at that step")

// Checkout is one purchase paused at a confirmation point. The caller
// resolves each pause with a Confirm* call or Decline; nothing happens on
// the network in between.
type Checkout struct {
	svc   *orderServiceImpl
	item  model.ContentItem
	order *model.Order
	stage Stage
}

func (c *Checkout) Stage() Stage {
	return c.stage
}

func (c *Checkout) Item() model.ContentItem {
	return c.item
}

// Order is the created order, nil before ConfirmOrder succeeds.
func (c *Checkout) Order() *model.Order {
	return c.order
}

func (c *Checkout) Summary() string {
	return fmt.Sprintf("Buy \"%s\" for ¥%s?", c.item.Title, c.item.Price.String())
}

func (c *Checkout) PaymentPrompt() string {
	return "Order created. Pay now?"
}

func (c *Checkout) ConfirmOrder(ctx context.Context) (*model.Order, error) {
	if c.stage != StageConfirmOrder {
		return nil, ErrCheckoutStage
	}
	order, err := c.svc.createOrder(ctx, c.item)
	if err != nil {
		c.stage = StageHalted
		return nil, err
	}
	c.order = order
	c.stage = StageConfirmPayment
	return order, nil
}

// ConfirmPayment pays the created order. On failure the checkout stays at
// this step and the order stays pending.
func (c *Checkout) ConfirmPayment(ctx context.Context) (*model.Order, error) {
	if c.stage != StageConfirmPayment {
		return nil, ErrCheckoutStage
	}
	paid, err := c.svc.Pay(ctx, c.order.ID)
	if err != nil {
		return nil, err
	}
	c.stage = StagePaid
	if paid != nil {
		c.order = paid
	}
	return paid, nil
}

// Decline stops the checkout. A created order is left pending.
func (c *Checkout) Decline() {
	if c.stage == StagePaid {
		return
	}
	c.stage = StageHalted
}
