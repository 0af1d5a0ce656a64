package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"storefront-client/internal/apperr"
	"storefront-client/internal/client"
	"storefront-client/internal/model"
	"storefront-client/internal/notify"
	"storefront-client/internal/state"
	"storefront-client/internal/view"

	"github.com/sirupsen/logrus"
)

type CatalogService interface {
	// LoadContents replaces the content cache with the items of category.
	// Overlapping calls are not coordinated; the last response processed
	// wins.
	LoadContents(ctx context.Context, category model.Category) error
}

type catalogServiceImpl struct {
	api      client.APIClient
	state    *state.AppState
	notifier notify.Notifier
	view     view.View
	logger   logrus.FieldLogger
}

func NewCatalogService(
	api client.APIClient,
	appState *state.AppState,
	notifier notify.Notifier,
	v view.View,
	logger logrus.FieldLogger,
) CatalogService {
	return &catalogServiceImpl{
		api:      api,
		state:    appState,
		notifier: notifier,
		view:     v,
		logger:   logger,
	}
}

func contentEndpoint(category model.Category) string {
	if category == model.CategoryAll || category == "" {
		return "/content"
	}
	return "/content?" + url.Values{"type": {string(category)}}.Encode()
}

func (s *catalogServiceImpl) LoadContents(ctx context.Context, category model.Category) error {
	if category == "" {
		category = model.CategoryAll
	}
	s.state.SetCategory(category)

	resp, err := s.api.Request(ctx, http.MethodGet, contentEndpoint(category), nil)
	if err != nil {
		s.view.RenderCatalogError()
		return fmt.Errorf("load contents: %w", err)
	}

	if !resp.Success || !resp.HasData() {
		s.state.ReplaceContents(nil)
		s.view.RenderCatalogEmpty()
		return nil
	}

	var items []model.ContentItem
	if err := resp.DecodeData(&items); err != nil {
		notice := apperr.NoticeFor(apperr.KindUnknown)
		s.notifier.Notify(notice.Message, notice.Severity)
		s.view.RenderCatalogError()
		return &apperr.Error{Kind: apperr.KindUnknown, Message: "decode contents", Err: err}
	}

	if category != model.CategoryAll {
		kept := items[:0]
		for _, item := range items {
			if string(item.Type) == string(category) {
				kept = append(kept, item)
			}
		}
		items = kept
	}

	s.state.ReplaceContents(items)
	s.logger.WithFields(logrus.Fields{"category": category, "count": len(items)}).Debug("catalog loaded")

	cached := s.state.Contents()
	if len(cached) == 0 {
		s.view.RenderCatalogEmpty()
		return nil
	}
	s.view.RenderCatalog(cached)
	return nil
}
