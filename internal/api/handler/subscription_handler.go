package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

// SubscriptionHandler exposes the authenticated user's subscription.
type SubscriptionHandler struct {
	subs ports.SubscriptionService
}

func NewSubscriptionHandler(subs ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

type createSubscriptionRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

type updateSubscriptionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE EXPIRED PENDING"`
}

type activeStatusResponse struct {
	Active bool `json:"active"`
}

// Get returns the caller's subscription record.
//
// @Summary      Current subscription
// @Tags         subscriptions
// @Produce      json
// @Success      200  {object}  domain.SubscriptionRecord
// @Failure      404  {object}  map[string]string
// @Router       /api/subscriptions/me [get]
func (h *SubscriptionHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	record, err := h.subs.Subscription(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// Active reports whether the caller holds an ACTIVE subscription. Never
// errors; fetch failures read as inactive.
//
// @Summary      Subscription active check
// @Tags         subscriptions
// @Produce      json
// @Success      200  {object}  activeStatusResponse
// @Router       /api/subscriptions/me/active [get]
func (h *SubscriptionHandler) Active(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	active := h.subs.ActiveStatus(c.Request().Context(), user.ID)
	return c.JSON(http.StatusOK, activeStatusResponse{Active: active})
}

// Create provisions a subscription for the caller.
//
// @Summary      Create subscription
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        body  body      createSubscriptionRequest  true  "Plan selection"
// @Success      201   {object}  domain.SubscriptionRecord
// @Router       /api/subscriptions [post]
func (h *SubscriptionHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.subs.Create(c.Request().Context(), user.ID, req.PlanID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, record)
}

// UpdateStatus mutates a subscription's status.
//
// @Summary      Update subscription status
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        id    path      string                           true  "Subscription id"
// @Param        body  body      updateSubscriptionStatusRequest  true  "New status"
// @Success      200   {object}  domain.SubscriptionRecord
// @Router       /api/subscriptions/{id}/status [patch]
func (h *SubscriptionHandler) UpdateStatus(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateSubscriptionStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.subs.UpdateStatus(c.Request().Context(), user.ID, c.Param("id"), domain.SubscriptionStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}
