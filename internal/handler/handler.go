package handler

import (
	"context"
	"storefront-client/internal/apperr"
	"storefront-client/internal/model"
	"storefront-client/internal/notify"
	"storefront-client/internal/service"
	"storefront-client/internal/state"
	"storefront-client/internal/view"

	"github.com/sirupsen/logrus"
)

// Handler turns view intents into workflow calls.
type Handler struct {
	authService    service.AuthService
	catalogService service.CatalogService
	orderService   service.OrderService
	state          *state.AppState
	view           view.View
	confirmer      service.Confirmer
	notifier       notify.Notifier
	logger         logrus.FieldLogger
}

func NewHandler(
	authService service.AuthService,
	catalogService service.CatalogService,
	orderService service.OrderService,
	appState *state.AppState,
	v view.View,
	confirmer service.Confirmer,
	notifier notify.Notifier,
	logger logrus.FieldLogger,
) *Handler {
	return &Handler{
		authService:    authService,
		catalogService: catalogService,
		orderService:   orderService,
		state:          appState,
		view:           v,
		confirmer:      confirmer,
		notifier:       notifier,
		logger:         logger,
	}
}

// Start restores the stored session and shows the full catalog.
func (h *Handler) Start(ctx context.Context) error {
	if err := h.authService.RestoreSession(ctx); err != nil {
		h.logger.WithError(err).Error("restore session")
	}
	h.state.SetPanel(state.PanelCatalog)
	h.view.ShowPanel(state.PanelCatalog)
	return h.catalogService.LoadContents(ctx, model.CategoryAll)
}

func (h *Handler) OnSubmitLogin(ctx context.Context, username, password string) error {
	return h.authService.Login(ctx, username, password)
}

func (h *Handler) OnSubmitRegister(ctx context.Context, username, password, confirmPassword string) error {
	return h.authService.Register(ctx, username, password, confirmPassword)
}

func (h *Handler) OnSelectCategory(ctx context.Context, category string) error {
	c, err := model.ParseCategory(category)
	if err != nil {
		h.notifier.Notify("Unknown category: "+category, notify.Warning)
		return &apperr.Error{Kind: apperr.KindValidation, Message: "unknown category", Err: err}
	}
	return h.catalogService.LoadContents(ctx, c)
}

func (h *Handler) OnBuy(ctx context.Context, contentID int64) error {
	_, err := h.orderService.Purchase(ctx, contentID, h.confirmer)
	if err != nil {
		return err
	}
	if h.state.Panel() == state.PanelMember {
		return h.refreshMemberPanel(ctx)
	}
	return nil
}

func (h *Handler) OnPayOrder(ctx context.Context, orderID int64) error {
	if _, err := h.orderService.Pay(ctx, orderID); err != nil {
		return err
	}
	if h.state.Panel() == state.PanelMember {
		return h.refreshMemberPanel(ctx)
	}
	return nil
}

func (h *Handler) OnLogout(ctx context.Context) {
	h.authService.Logout(ctx)
}

func (h *Handler) OnOpenUserPanel(ctx context.Context) error {
	if !h.state.Session().Authenticated() {
		h.notifier.Notify("Please log in first", notify.Warning)
		h.view.PromptLogin()
		return apperr.ErrLoginRequired
	}

	h.state.SetPanel(state.PanelMember)
	h.view.ShowPanel(state.PanelMember)
	return h.refreshMemberPanel(ctx)
}

func (h *Handler) OnReturnHome(ctx context.Context) error {
	h.state.SetPanel(state.PanelCatalog)
	h.view.ShowPanel(state.PanelCatalog)
	return h.catalogService.LoadContents(ctx, h.state.Category())
}

func (h *Handler) refreshMemberPanel(ctx context.Context) error {
	if err := h.orderService.LoadStats(ctx); err != nil {
		h.logger.WithError(err).Warn("load order stats")
	}
	// a 401 above logs the user out
	session := h.state.Session()
	if !session.Authenticated() {
		return apperr.ErrUnauthenticated
	}
	h.view.RenderProfile(*session.User, h.state.Stats())
	return h.orderService.LoadOrders(ctx)
}
