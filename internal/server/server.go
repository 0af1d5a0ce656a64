// Package server is an in-memory stand-in for the storefront API. It speaks
// the same routes and envelopes as the real service and is what the client
// tests run against.
package server

import (
	"net/http"
	"storefront-client/internal/middleware"
	"sync"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo  *echo.Echo
	store *Store

	requests atomic.Int64
	mu       sync.Mutex
	hits     map[string]int
}

func NewServer(store *Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())

	s := &Server{
		echo:  e,
		store: store,
		hits:  make(map[string]int),
	}
	e.Use(s.countRequests)

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.POST("/user/register", s.register)
	api.POST("/user/login", s.login)
	api.GET("/content", s.listContents)

	order := api.Group("/order", middleware.BearerAuth(s.store.ResolveToken))
	order.POST("", s.createOrder)
	order.GET("", s.listOrders)
	order.GET("/stats", s.orderStats)
	order.GET("/:id", s.getOrder)
	order.POST("/:id/pay", s.payOrder)
}

func (s *Server) countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.requests.Add(1)
		s.mu.Lock()
		s.hits[c.Request().Method+" "+c.Request().URL.Path]++
		s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Requests is the number of requests served so far.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// Hits counts requests for one "METHOD /path" pair.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": data})
}

func reject(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{"success": false, "message": message})
}

func userID(c echo.Context) int64 {
	id, _ := c.Get(middleware.UserIDKey).(int64)
	return id
}
