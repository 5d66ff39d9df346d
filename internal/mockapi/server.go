// Package mockapi serves the OrderUp REST API from in-memory fixtures for
// local development and tests.
package mockapi

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Makepad-fr/orderup/internal/model"
)

// Server owns the mutable fixture state.
type Server struct {
	mu            sync.Mutex
	orders        []model.Order
	picklists     []*model.PicklistDetails
	locations     []model.Location
	notifications []model.Notification
	fulfilled     map[string]time.Time

	secret []byte
	expiry time.Duration
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*Server)

func WithSecret(secret string) Option       { return func(s *Server) { s.secret = []byte(secret) } }
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }
func WithLogger(l *zap.Logger) Option       { return func(s *Server) { s.logger = l } }

// WithTokenExpiry sets how long issued tokens live.
func WithTokenExpiry(d time.Duration) Option { return func(s *Server) { s.expiry = d } }

func New(opts ...Option) *Server {
	s := &Server{
		secret:    []byte("orderup-dev-secret"),
		expiry:    24 * time.Hour,
		now:       time.Now,
		logger:    zap.NewNop(),
		fulfilled: map[string]time.Time{},
	}
	for _, o := range opts {
		o(s)
	}
	now := s.now()
	s.orders = seedOrders(now)
	s.picklists = seedPicklists(s.orders)
	s.locations = seedLocations()
	s.notifications = seedNotifications(now)
	return s
}

// Router mounts every endpoint under /api.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	api := r.Group("/api")
	api.POST("/auth/login", s.login)

	authed := api.Group("", s.requireAuth())
	authed.POST("/auth/logout", s.logout)
	authed.POST("/auth/refresh", s.refresh)

	authed.GET("/dashboard", s.dashboard)

	authed.GET("/orders", s.listOrders)
	authed.POST("/orders/create-picklist", s.createPicklist)
	authed.GET("/orders/:id", s.getOrder)
	authed.PUT("/orders/:id/status", s.updateOrderStatus)

	authed.GET("/picklists", s.listPicklists)
	authed.GET("/picklists/:id", s.getPicklist)
	authed.PUT("/picklists/items/:picklistId/:itemId", s.updatePicklistItem)
	authed.PUT("/picklists/complete/:id", s.completePicklist)
	authed.PUT("/picklists/:id/mark-all-picked", s.markAllPicked)

	authed.GET("/locations", s.listLocations)
	authed.GET("/packing/:id", s.packingOrders)
	authed.POST("/fulfillment/:id", s.fulfillOrder)
	return r
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
	}
}

type claims struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	StoreID string `json:"storeId"`
	jwt.RegisteredClaims
}

func (s *Server) issue(u model.User) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.expiry)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:    u.Name,
		Role:    string(u.Role),
		StoreID: u.StoreID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString(s.secret)
	return signed, exp, err
}

const userKey = "user"

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if !strings.HasPrefix(raw, "Bearer ") {
			abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		var cl claims
		_, err := jwt.ParseWithClaims(strings.TrimPrefix(raw, "Bearer "), &cl,
			func(*jwt.Token) (any, error) { return s.secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(s.now),
		)
		if err != nil {
			msg := "Unauthorized"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token expired"
			}
			abort(c, http.StatusUnauthorized, msg)
			return
		}
		c.Set(userKey, model.User{ID: cl.Subject, Name: cl.Name, Role: model.UserRole(cl.Role), StoreID: cl.StoreID})
		c.Next()
	}
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

func currentUser(c *gin.Context) model.User {
	u, _ := c.Get(userKey)
	user, _ := u.(model.User)
	return user
}
