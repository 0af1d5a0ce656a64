// Package view is the presentation boundary. Workflows render into a View and
// never own its lifecycle.
package view

import (
	"storefront-client/internal/model"
	"storefront-client/internal/state"
)

type View interface {
	RenderCatalog(items []model.ContentItem)
	RenderCatalogEmpty()
	RenderCatalogError()

	RenderOrders(orders []model.Order)
	RenderOrdersEmpty()
	RenderOrdersError()

	RenderAuthStatus(session model.Session)
	RenderProfile(user model.UserProfile, stats *model.OrderStats)

	// PromptLogin presents the login affordance.
	PromptLogin()
	ShowPanel(panel state.Panel)
}
