package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

// TodoHandler exposes the dashboard's to-do widget.
type TodoHandler struct {
	todos ports.TodoService
}

func NewTodoHandler(todos ports.TodoService) *TodoHandler {
	return &TodoHandler{todos: todos}
}

type addTodoRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

type setCheckedRequest struct {
	Checked *bool `json:"checked" validate:"required"`
}

type reorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// List returns the caller's to-do items in display order, seeding the
// default checklist on first use.
//
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Success      200  {array}  domain.TodoItem
// @Router       /api/todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.todos.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Add appends an item to the list.
//
// @Summary      Add todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body  addTodoRequest  true  "Item text"
// @Success      201   {object}  domain.TodoItem
// @Router       /api/todos [post]
func (h *TodoHandler) Add(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req addTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.todos.Add(c.Request().Context(), user.ID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// SetChecked toggles an item.
//
// @Summary      Check or uncheck todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "Item id"
// @Param        body  body  setCheckedRequest  true  "Checked flag"
// @Success      200   {object}  domain.TodoItem
// @Router       /api/todos/{id} [patch]
func (h *TodoHandler) SetChecked(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req setCheckedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.todos.SetChecked(c.Request().Context(), user.ID, c.Param("id"), *req.Checked)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Remove deletes an item.
//
// @Summary      Delete todo
// @Tags         todos
// @Param        id  path  string  true  "Item id"
// @Success      204
// @Router       /api/todos/{id} [delete]
func (h *TodoHandler) Remove(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.todos.Remove(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Reorder applies a new display order. The payload must be a permutation of
// the stored item ids.
//
// @Summary      Reorder todos
// @Tags         todos
// @Accept       json
// @Param        body  body  reorderRequest  true  "Ordered item ids"
// @Success      204
// @Failure      422   {object}  map[string]string
// @Router       /api/todos/reorder [put]
func (h *TodoHandler) Reorder(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.todos.Reorder(c.Request().Context(), user.ID, req.IDs); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
