package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"storefront-client/internal/apperr"
	"storefront-client/internal/config"
	"storefront-client/internal/dto"
	"storefront-client/internal/notify"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 15 * time.Second

// APIClient is the single path to the storefront API. Failures are
// classified, notified once here, and returned as *apperr.Error.
type APIClient interface {
	Request(ctx context.Context, method, endpoint string, body any) (*dto.Response, error)
	// OnUnauthenticated registers the hook run on every 401, before the
	// user is notified.
	OnUnauthenticated(fn func(ctx context.Context))
}

// TokenSource supplies the bearer token for outgoing requests.
type TokenSource interface {
	Token() string
}

type apiClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	tokens     TokenSource
	notifier   notify.Notifier
	logger     logrus.FieldLogger

	mu                sync.RWMutex
	onUnauthenticated func(ctx context.Context)
}

func NewAPIClient(apiCfg *config.API, tokens TokenSource, notifier notify.Notifier, logger logrus.FieldLogger) APIClient {
	timeout := apiCfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &apiClientImpl{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseApiURL: strings.TrimRight(apiCfg.BaseURL, "/"),
		tokens:     tokens,
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *apiClientImpl) OnUnauthenticated(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthenticated = fn
}

func (c *apiClientImpl) Request(ctx context.Context, method, endpoint string, body any) (*dto.Response, error) {
	requestID := uuid.NewString()
	log := c.logger.WithFields(logrus.Fields{
		"method":     method,
		"endpoint":   endpoint,
		"request_id": requestID,
	})
	start := time.Now()

	resp, status, err := c.do(ctx, method, endpoint, body, requestID)
	log = log.WithField("elapsed", time.Since(start))
	if status != 0 {
		log = log.WithField("status", status)
	}
	if err != nil {
		log.WithError(err).Warn("storefront request failed")
		c.fail(ctx, err)
		return nil, err
	}

	log.Debug("storefront request done")
	return resp, nil
}

func (c *apiClientImpl) do(ctx context.Context, method, endpoint string, body any, requestID string) (*dto.Response, int, error) {
	var reader io.Reader
	if body != nil && method != http.MethodGet {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, &apperr.Error{Kind: apperr.KindUnknown, Message: "marshal request body", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseApiURL+endpoint, reader)
	if err != nil {
		return nil, 0, &apperr.Error{Kind: apperr.KindUnknown, Message: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, classifyTransport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, classifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &apperr.Error{
			Kind:    apperr.FromStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: serverMessage(respBody),
		}
	}

	var result dto.Response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, resp.StatusCode, &apperr.Error{
			Kind:    apperr.KindUnknown,
			Status:  resp.StatusCode,
			Message: "decode response",
			Err:     err,
		}
	}

	return &result, resp.StatusCode, nil
}

// fail runs the failure side effects: logout on 401, then one notice.
func (c *apiClientImpl) fail(ctx context.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindUnauthenticated {
		c.mu.RLock()
		hook := c.onUnauthenticated
		c.mu.RUnlock()
		if hook != nil {
			hook(ctx)
		}
	}

	notice := apperr.NoticeFor(kind)
	c.notifier.Notify(notice.Message, notice.Severity)
}

func classifyTransport(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &apperr.Error{Kind: apperr.KindTimeout, Message: "request timed out", Err: err}
	}
	return &apperr.Error{Kind: apperr.KindUnknown, Message: "send request", Err: err}
}

// serverMessage extracts the envelope message from an error body, if any.
func serverMessage(body []byte) string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}
