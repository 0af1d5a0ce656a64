package server

import (
	"errors"
	"net/http"
	"storefront-client/internal/dto"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func (s *Server) register(c echo.Context) error {
	var req dto.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return reject(c, http.StatusBadRequest, "invalid req body")
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return reject(c, http.StatusBadRequest, "username and password are required")
	}

	if err := s.store.Register(username, req.Password, ""); err != nil {
		// the storefront reports duplicates inside a 200 envelope
		return reject(c, http.StatusOK, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "registered"})
}

func (s *Server) login(c echo.Context) error {
	var req dto.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return reject(c, http.StatusBadRequest, "invalid req body")
	}

	token, profile, err := s.store.Login(req.Username, req.Password)
	if err != nil {
		return reject(c, http.StatusUnauthorized, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "token": token, "user": profile})
}

func (s *Server) listContents(c echo.Context) error {
	return ok(c, s.store.Contents(c.QueryParam("type")))
}

func (s *Server) createOrder(c echo.Context) error {
	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return reject(c, http.StatusBadRequest, "invalid req body")
	}

	o, err := s.store.CreateOrder(userID(c), req.ContentID)
	if err != nil {
		return reject(c, http.StatusOK, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "data": o})
}

func (s *Server) listOrders(c echo.Context) error {
	return ok(c, s.store.Orders(userID(c)))
}

func (s *Server) orderStats(c echo.Context) error {
	return ok(c, s.store.Stats(userID(c)))
}

func (s *Server) getOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return reject(c, http.StatusBadRequest, "invalid order id")
	}

	o, err := s.store.Order(userID(c), id)
	if err != nil {
		return reject(c, http.StatusNotFound, err.Error())
	}
	return ok(c, o)
}

func (s *Server) payOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return reject(c, http.StatusBadRequest, "invalid order id")
	}

	err = s.store.Pay(userID(c), id)
	switch {
	case errors.Is(err, errOrderNotFound):
		return reject(c, http.StatusNotFound, err.Error())
	case err != nil:
		return reject(c, http.StatusOK, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "paid"})
}
