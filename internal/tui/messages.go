package tui

import (
	"context"
	"time"

	"budgetable/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// API is the slice of the HTTP client the TUI depends on.
type API interface {
	List(ctx context.Context) ([]model.Row, error)
	Create(ctx context.Context, row model.Row) (model.Row, error)
	Update(ctx context.Context, row model.Row) (model.Row, error)
	Delete(ctx context.Context, id string) error
}

// rowsLoadedMsg is sent when the initial list fetch completes.
type rowsLoadedMsg struct {
	rows []model.Row
	err  error
}

// rowSavedMsg is sent when an update request completes.
type rowSavedMsg struct {
	id  string
	row model.Row
	err error
}

// rowCreatedMsg is sent when a create request completes.
type rowCreatedMsg struct {
	row model.Row
	err error
}

// rowDeletedMsg is sent when a delete request completes.
type rowDeletedMsg struct {
	id  string
	err error
}

// markClearMsg clears the recently-updated marker for one row, but only if
// gen still matches the marker's generation.
type markClearMsg struct {
	id  string
	gen int
}

// toastClearMsg clears the transient status message.
type toastClearMsg struct {
	gen int
}

const (
	markerDelay = 500 * time.Millisecond
	toastDelay  = 3 * time.Second
)

func loadRowsCmd(api API) tea.Cmd {
	return func() tea.Msg {
		rows, err := api.List(context.Background())
		return rowsLoadedMsg{rows: rows, err: err}
	}
}

func saveRowCmd(api API, row model.Row) tea.Cmd {
	return func() tea.Msg {
		saved, err := api.Update(context.Background(), row)
		return rowSavedMsg{id: row.ID, row: saved, err: err}
	}
}

func createRowCmd(api API, draft model.Row) tea.Cmd {
	return func() tea.Msg {
		created, err := api.Create(context.Background(), draft)
		return rowCreatedMsg{row: created, err: err}
	}
}

func deleteRowCmd(api API, id string) tea.Cmd {
	return func() tea.Msg {
		err := api.Delete(context.Background(), id)
		return rowDeletedMsg{id: id, err: err}
	}
}

func clearMarkCmd(id string, gen int) tea.Cmd {
	return tea.Tick(markerDelay, func(time.Time) tea.Msg {
		return markClearMsg{id: id, gen: gen}
	})
}

func clearToastCmd(gen int) tea.Cmd {
	return tea.Tick(toastDelay, func(time.Time) tea.Msg {
		return toastClearMsg{gen: gen}
	})
}
