package domain

import "time"

// TodoItem is one entry in a user's reorderable to-do list. Position is the
// zero-based display order within the list.
type TodoItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Text      string    `json:"text"`
	Checked   bool      `json:"checked"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultTodos seeds a user's list on first read, matching the dashboard's
// starter checklist.
func DefaultTodos() []TodoItem {
	texts := []struct {
		text    string
		checked bool
	}{
		{"Review project requirements", true},
		{"Create wireframes for new features", true},
		{"Implement authentication system", false},
		{"Write unit tests for core components", false},
		{"Optimize database queries", false},
		{"Deploy to staging environment", false},
	}
	items := make([]TodoItem, 0, len(texts))
	for i, t := range texts {
		items = append(items, TodoItem{Text: t.text, Checked: t.checked, Position: i})
	}
	return items
}
