package main

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type account struct {
	user         domain.UserRecord
	passwordHash []byte
}

type server struct {
	jwtSecret []byte
	log       zerolog.Logger

	mu            sync.RWMutex
	accounts      map[string]*account                    // keyed by email
	subscriptions map[string]*domain.SubscriptionRecord  // keyed by subscription id
	byUser        map[string]string                      // user id → subscription id
}

// newServer builds the Echo instance with seeded accounts. Three personas
// cover the gateway's access paths: a subscriber, an administrator, and a
// user with no subscription on file.
func newServer(jwtSecret string, log zerolog.Logger) *echo.Echo {
	s := &server{
		jwtSecret:     []byte(jwtSecret),
		log:           log,
		accounts:      make(map[string]*account),
		subscriptions: make(map[string]*domain.SubscriptionRecord),
		byUser:        make(map[string]string),
	}

	s.seedAccount("user@cfo.dev", "password123", domain.RoleUser)
	s.seedAccount("admin@cfo.dev", "password123", domain.RoleAdmin)
	s.seedAccount("trial@cfo.dev", "password123", domain.RoleUser)

	if sub := s.accounts["user@cfo.dev"]; sub != nil {
		s.seedSubscription(sub.user.ID, domain.SubscriptionActive)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.Logger())

	api := e.Group("/api")
	api.POST("/token/", s.token)
	api.GET("/users/users/", s.currentUser)
	api.GET("/subscriptions/:userId", s.subscription)
	api.POST("/subscriptions", s.createSubscription)
	api.PATCH("/subscriptions/:id/status", s.updateSubscriptionStatus)

	return e
}

func (s *server) seedAccount(email, password string, role domain.Role) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("upstream-stub: seed account %s: %v", email, err))
	}
	now := time.Now().UTC()
	s.accounts[email] = &account{
		user: domain.UserRecord{
			ID:        uuid.NewString(),
			Username:  strings.SplitN(email, "@", 2)[0],
			Email:     email,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		},
		passwordHash: hash,
	}
}

func (s *server) seedSubscription(userID string, status domain.SubscriptionStatus) {
	now := time.Now().UTC()
	record := &domain.SubscriptionRecord{
		ID:        uuid.NewString(),
		PlanID:    "plan-monthly",
		Status:    status,
		StartDate: now,
		EndDate:   now.Add(30 * 24 * time.Hour),
	}
	s.subscriptions[record.ID] = record
	s.byUser[userID] = record.ID
}

// --- Auth endpoints ---

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *server) token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "malformed request"})
	}

	s.mu.RLock()
	acct := s.accounts[strings.ToLower(req.Email)]
	s.mu.RUnlock()

	if acct == nil || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"detail": "No active account found with the given credentials",
		})
	}

	access, err := s.signToken(acct.user.ID, "access", accessTokenTTL)
	if err != nil {
		return err
	}
	refresh, err := s.signToken(acct.user.ID, "refresh", refreshTokenTTL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, domain.AuthGrant{
		Access:  access,
		Refresh: refresh,
		User:    acct.user,
	})
}

// currentUser answers with a single-element array; the real backend returns
// a list from its users endpoint and the gateway takes the first entry.
func (s *server) currentUser(c echo.Context) error {
	userID, err := s.authenticate(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "token invalid or expired"})
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acct := range s.accounts {
		if acct.user.ID == userID {
			return c.JSON(http.StatusOK, []domain.UserRecord{acct.user})
		}
	}
	return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "unknown subject"})
}

func (s *server) signToken(userID, use string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        userID,
		"token_type": use,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *server) authenticate(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return "", fmt.Errorf("missing bearer token")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token missing subject")
	}
	return sub, nil
}

// --- Subscription endpoints ---

func (s *server) subscription(c echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subID, ok := s.byUser[c.Param("userId")]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "subscription not found"})
	}
	return c.JSON(http.StatusOK, s.subscriptions[subID])
}

type createSubscriptionRequest struct {
	UserID string `json:"userId"`
	PlanID string `json:"planId"`
}

func (s *server) createSubscription(c echo.Context) error {
	var req createSubscriptionRequest
	if err := c.Bind(&req); err != nil || req.UserID == "" || req.PlanID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "userId and planId are required"})
	}

	now := time.Now().UTC()
	record := &domain.SubscriptionRecord{
		ID:        uuid.NewString(),
		PlanID:    req.PlanID,
		Status:    domain.SubscriptionActive,
		StartDate: now,
		EndDate:   now.Add(30 * 24 * time.Hour),
	}

	s.mu.Lock()
	s.subscriptions[record.ID] = record
	s.byUser[req.UserID] = record.ID
	s.mu.Unlock()

	s.log.Info().Str("user_id", req.UserID).Str("plan_id", req.PlanID).Msg("subscription created")
	return c.JSON(http.StatusCreated, record)
}

type updateStatusRequest struct {
	Status domain.SubscriptionStatus `json:"status"`
}

func (s *server) updateSubscriptionStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil || !req.Status.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "unknown status"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.subscriptions[c.Param("id")]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "subscription not found"})
	}
	record.Status = req.Status
	return c.JSON(http.StatusOK, record)
}
