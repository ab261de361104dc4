package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

// ExpenseHandler exposes the expense list, CRUD, and summary endpoints.
type ExpenseHandler struct {
	expenses ports.ExpenseService
}

func NewExpenseHandler(expenses ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type expenseRequest struct {
	Date          time.Time `json:"date"           validate:"required"`
	Category      string    `json:"category"       validate:"required,oneof=SHOPPING TRANSPORT FEES LOAN FOOD ENTERTAINMENT HEALTH EDUCATION OTHER"`
	Location      string    `json:"location"`
	Value         float64   `json:"value"          validate:"required,gt=0"`
	Description   string    `json:"description"    validate:"required"`
	PaymentMethod string    `json:"payment_method" validate:"required,oneof=CREDIT_CARD DEBIT_CARD PIX BANK_SLIP"`
	CreditCardID  string    `json:"credit_card_id"`

	InstallmentCurrent int `json:"installment_current" validate:"omitempty,gt=0"`
	InstallmentTotal   int `json:"installment_total"   validate:"omitempty,gt=0"`
}

func (r expenseRequest) toDomain(userID string) domain.Expense {
	expense := domain.Expense{
		Date:          r.Date,
		Category:      domain.ExpenseCategory(r.Category),
		Location:      r.Location,
		Value:         r.Value,
		Description:   r.Description,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		CreditCardID:  r.CreditCardID,
		UserID:        userID,
	}
	if r.InstallmentTotal > 0 {
		expense.Installment = &domain.Installment{Current: r.InstallmentCurrent, Total: r.InstallmentTotal}
	}
	return expense
}

// filtersFromQuery builds ExpenseFilters from the listing query string.
// Unparseable dates are ignored rather than rejected; the list degrades to
// unfiltered.
func filtersFromQuery(c echo.Context) domain.ExpenseFilters {
	filters := domain.ExpenseFilters{
		Category:      domain.ExpenseCategory(c.QueryParam("category")),
		Location:      c.QueryParam("location"),
		PaymentMethod: domain.PaymentMethod(c.QueryParam("payment_method")),
		CreditCardID:  c.QueryParam("credit_card_id"),
		Search:        c.QueryParam("search"),
	}
	if v := c.QueryParam("start_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.StartDate = t
		}
	}
	if v := c.QueryParam("end_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.EndDate = t
		}
	}
	return filters
}

// List returns the caller's expenses with optional filters.
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Success      200  {array}  domain.Expense
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	expenses, err := h.expenses.List(c.Request().Context(), user.ID, filtersFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expenses)
}

// Summary returns the aggregated chart payload for the caller's expenses.
//
// @Summary      Expense summary
// @Tags         expenses
// @Produce      json
// @Success      200  {object}  domain.ExpenseSummary
// @Router       /api/expenses/summary [get]
func (h *ExpenseHandler) Summary(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	summary, err := h.expenses.Summary(c.Request().Context(), user.ID, filtersFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Get returns a single expense.
//
// @Summary      Get expense
// @Tags         expenses
// @Produce      json
// @Param        id  path  string  true  "Expense id"
// @Success      200  {object}  domain.Expense
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	expense, err := h.expenses.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expense)
}

// Create records a new expense.
//
// @Summary      Create expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body  expenseRequest  true  "Expense"
// @Success      201   {object}  domain.Expense
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.expenses.Create(c.Request().Context(), req.toDomain(user.ID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update replaces an expense.
//
// @Summary      Update expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "Expense id"
// @Param        body  body  expenseRequest  true  "Expense"
// @Success      200   {object}  domain.Expense
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.expenses.Update(c.Request().Context(), c.Param("id"), req.toDomain(user.ID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an expense.
//
// @Summary      Delete expense
// @Tags         expenses
// @Param        id  path  string  true  "Expense id"
// @Success      204
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.expenses.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
