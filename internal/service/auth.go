package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"storefront-client/internal/apperr"
	"storefront-client/internal/client"
	"storefront-client/internal/dto"
	"storefront-client/internal/model"
	"storefront-client/internal/notify"
	"storefront-client/internal/repository"
	"storefront-client/internal/state"
	"storefront-client/internal/view"
	"strings"

	"github.com/sirupsen/logrus"
)

type AuthService interface {
	Register(ctx context.Context, username, password, confirmPassword string) error
	Login(ctx context.Context, username, password string) error
	// Logout is safe to call when nobody is logged in.
	Logout(ctx context.Context)
	// RestoreSession loads the stored session without contacting the API.
	RestoreSession(ctx context.Context) error
}

type authServiceImpl struct {
	api         client.APIClient
	state       *state.AppState
	sessionRepo repository.SessionRepository
	catalog     CatalogService
	notifier    notify.Notifier
	view        view.View
	logger      logrus.FieldLogger
}

// NewAuthService also installs Logout as the gateway's 401 hook, which is how
// a stale stored token clears itself.
func NewAuthService(
	api client.APIClient,
	appState *state.AppState,
	sessionRepo repository.SessionRepository,
	catalog CatalogService,
	notifier notify.Notifier,
	v view.View,
	logger logrus.FieldLogger,
) AuthService {
	s := &authServiceImpl{
		api:         api,
		state:       appState,
		sessionRepo: sessionRepo,
		catalog:     catalog,
		notifier:    notifier,
		view:        v,
		logger:      logger,
	}
	api.OnUnauthenticated(s.Logout)
	return s
}

func (s *authServiceImpl) Register(ctx context.Context, username, password, confirmPassword string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return s.invalid("Please fill in all fields")
	}
	if password != confirmPassword {
		return s.invalid("The two passwords do not match")
	}

	resp, err := s.api.Request(ctx, http.MethodPost, "/user/register", &dto.CredentialsRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if !resp.Success {
		return s.rejected(resp, "Registration failed")
	}

	s.notifier.Notify("Registration successful, please log in", notify.Success)
	s.view.PromptLogin()
	return nil
}

func (s *authServiceImpl) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return s.invalid("Please enter username and password")
	}

	resp, err := s.api.Request(ctx, http.MethodPost, "/user/login", &dto.CredentialsRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !resp.Success {
		return s.rejected(resp, "Login failed")
	}

	token, user := loginSession(resp)
	if token == "" || user == nil {
		return s.rejected(&dto.Response{}, "Login failed")
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user profile: %w", err)
	}

	s.state.SetSession(token, user)
	if err := s.sessionRepo.Save(ctx, token, string(userJSON)); err != nil {
		// the in-memory session still works until the client exits
		s.logger.WithError(err).Error("persist session")
	}

	s.logger.WithField("username", user.Username).Info("logged in")
	s.notifier.Notify("Login successful", notify.Success)
	s.view.RenderAuthStatus(s.state.Session())
	return nil
}

func (s *authServiceImpl) Logout(ctx context.Context) {
	s.state.ClearSession()
	if err := s.sessionRepo.Clear(ctx); err != nil {
		s.logger.WithError(err).Error("clear stored session")
	}

	s.notifier.Notify("Logged out", notify.Info)
	s.view.RenderAuthStatus(s.state.Session())

	if s.state.Panel() == state.PanelMember {
		s.state.SetPanel(state.PanelCatalog)
		s.view.ShowPanel(state.PanelCatalog)
		if err := s.catalog.LoadContents(ctx, s.state.Category()); err != nil {
			s.logger.WithError(err).Warn("reload catalog after logout")
		}
	}
}

func (s *authServiceImpl) RestoreSession(ctx context.Context) error {
	token, userJSON, err := s.sessionRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load stored session: %w", err)
	}

	if token != "" && userJSON != "" {
		var user *model.UserProfile
		if err := json.Unmarshal([]byte(userJSON), &user); err == nil && user != nil {
			s.state.SetSession(token, user)
			s.view.RenderAuthStatus(s.state.Session())
			return nil
		}
		s.logger.Warn("discarding malformed stored session")
	}

	s.state.ClearSession()
	if token != "" || userJSON != "" {
		if err := s.sessionRepo.Clear(ctx); err != nil {
			return fmt.Errorf("clear stored session: %w", err)
		}
	}
	s.view.RenderAuthStatus(s.state.Session())
	return nil
}

func (s *authServiceImpl) invalid(message string) error {
	s.notifier.Notify(message, notify.Warning)
	return apperr.Validation(message)
}

func (s *authServiceImpl) rejected(resp *dto.Response, fallback string) error {
	return reject(s.notifier, resp, fallback)
}

// loginSession accepts the token and user either beside or inside data.
func loginSession(resp *dto.Response) (string, *model.UserProfile) {
	if resp.Token != "" && resp.User != nil {
		return resp.Token, resp.User
	}
	if !resp.HasData() {
		return "", nil
	}
	var data struct {
		Token string             `json:"token"`
		User  *model.UserProfile `json:"user"`
	}
	if err := resp.DecodeData(&data); err != nil {
		return "", nil
	}
	return data.Token, data.User
}

// reject surfaces a success:false envelope and turns it into an error.
func reject(notifier notify.Notifier, resp *dto.Response, fallback string) error {
	message := resp.Message
	if message == "" {
		message = fallback
	}
	notifier.Notify(message, notify.Danger)
	return apperr.Rejection(message)
}
