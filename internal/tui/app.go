// Package tui provides the interactive Bubble Tea front end for budgetable.
package tui

import (
	"fmt"

	"budgetable/internal/controller"
	"budgetable/internal/model"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Table columns, in display order.
const (
	colTitle = iota
	colPrice
	colLink
	colNote
	colStatus
	numCols
)

// App is the root Bubble Tea model. All row state lives in the controller;
// App only holds presentation state.
type App struct {
	api  API
	ctrl *controller.Controller

	width  int
	height int

	loaded  bool
	spinner spinner.Model

	// Navigation: cursor may point one past the last row, which is the
	// draft row while editing is unlocked.
	unlocked bool
	cursor   int
	col      int

	// Cell editor
	editing bool
	input   textinput.Model

	// Delete confirmation (huh form modal)
	confirm    *huh.Form
	confirmVal *bool
	confirmID  string

	// Transient status message
	toast    string
	toastGen int
}

// NewApp creates the TUI model on top of the given API client.
func NewApp(api API) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#3AA99F"))

	return App{
		api:     api,
		ctrl:    controller.New(),
		spinner: sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(loadRowsCmd(a.api), a.spinner.Tick)
}

// fieldForCol maps an editable column to its controller field.
func fieldForCol(col int) (controller.Field, bool) {
	switch col {
	case colTitle:
		return controller.FieldTitle, true
	case colPrice:
		return controller.FieldPrice, true
	case colLink:
		return controller.FieldLink, true
	case colNote:
		return controller.FieldNote, true
	}
	return 0, false
}

// onDraft reports whether the cursor sits on the draft row.
func (a App) onDraft() bool {
	return a.unlocked && a.cursor == a.ctrl.Len()
}

// selectedRow returns the persisted row under the cursor.
func (a App) selectedRow() (model.Row, bool) {
	rows := a.ctrl.Rows()
	if a.cursor < 0 || a.cursor >= len(rows) {
		return model.Row{}, false
	}
	return rows[a.cursor], true
}

func (a *App) setToast(s string) tea.Cmd {
	a.toast = s
	a.toastGen++
	return clearToastCmd(a.toastGen)
}

func (a *App) clampCursor() {
	max := a.ctrl.Len() - 1
	if a.unlocked {
		max = a.ctrl.Len()
	}
	if a.cursor > max {
		a.cursor = max
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case rowsLoadedMsg:
		a.loaded = true
		if msg.err != nil {
			// List stays empty; no automatic retry.
			return a, a.setToast("Error fetching data. Please try again later.")
		}
		a.ctrl.SetRows(msg.rows)
		a.clampCursor()
		return a, nil

	case rowSavedMsg:
		if msg.err != nil {
			a.ctrl.Revert(msg.id)
			return a, a.setToast("Error updating row. Please try again.")
		}
		gen := a.ctrl.Commit(msg.row)
		return a, tea.Batch(
			clearMarkCmd(msg.row.ID, gen),
			a.setToast("Row updated successfully!"),
		)

	case rowCreatedMsg:
		if msg.err != nil {
			return a, a.setToast("Error adding row. Please try again.")
		}
		a.ctrl.Append(msg.row)
		return a, a.setToast("Row added successfully!")

	case rowDeletedMsg:
		if msg.err != nil {
			return a, a.setToast("Error deleting row. Please try again.")
		}
		a.ctrl.Remove(msg.id)
		a.clampCursor()
		return a, a.setToast("Row deleted successfully!")

	case markClearMsg:
		a.ctrl.ClearMark(msg.id, msg.gen)
		return a, nil

	case toastClearMsg:
		if msg.gen == a.toastGen {
			a.toast = ""
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.confirm != nil {
			return a.updateConfirm(msg)
		}
		if a.editing {
			return a.updateCellEditor(msg)
		}
		return a.updateNavigation(msg)
	}

	// Forward unhandled messages to the confirm form (cursor blinks, etc.)
	if a.confirm != nil {
		return a.updateConfirm(msg)
	}

	return a, nil
}

func (a App) updateNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !a.loaded {
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "down", "j":
		a.cursor++
		a.clampCursor()
		return a, nil

	case "left", "h":
		if a.col > 0 {
			a.col--
		}
		return a, nil

	case "right", "l", "tab":
		if a.col < numCols-1 {
			a.col++
		}
		return a, nil

	case "e":
		a.unlocked = !a.unlocked
		a.clampCursor()
		if a.unlocked {
			return a, a.setToast("Editing unlocked")
		}
		return a, a.setToast("Editing locked")

	case "r":
		return a, loadRowsCmd(a.api)

	case "p", " ":
		if row, ok := a.selectedRow(); ok {
			if updated, ok := a.ctrl.ToggleStatus(row.ID); ok {
				return a, saveRowCmd(a.api, updated)
			}
		}
		return a, nil

	case "a":
		if !a.unlocked {
			return a, nil
		}
		if err := a.ctrl.ValidateDraft(); err != nil {
			return a, a.setToast("Title and price are required.")
		}
		return a, createRowCmd(a.api, a.ctrl.Draft())

	case "d":
		if !a.unlocked {
			return a, nil
		}
		row, ok := a.selectedRow()
		if !ok {
			return a, nil
		}
		return a.openConfirm(row)

	case "enter":
		// Status column toggles; everything else opens the cell editor.
		if a.col == colStatus {
			if row, ok := a.selectedRow(); ok {
				if updated, ok := a.ctrl.ToggleStatus(row.ID); ok {
					return a, saveRowCmd(a.api, updated)
				}
			}
			return a, nil
		}
		return a.openCellEditor()
	}

	return a, nil
}

// openCellEditor starts an edit session for the focused cell. Persisted
// rows get a snapshot so the blur-time diff can suppress no-op writes.
func (a App) openCellEditor() (tea.Model, tea.Cmd) {
	if !a.unlocked {
		return a, nil
	}
	field, ok := fieldForCol(a.col)
	if !ok {
		return a, nil
	}

	var current model.Row
	if a.onDraft() {
		current = a.ctrl.Draft()
	} else {
		row, ok := a.selectedRow()
		if !ok {
			return a, nil
		}
		a.ctrl.BeginEdit(row.ID)
		current = row
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 30
	switch field {
	case controller.FieldTitle:
		ti.Placeholder = "Title"
		ti.SetValue(current.Title)
	case controller.FieldPrice:
		ti.Placeholder = "Price"
		if current.Price != 0 {
			ti.SetValue(trimFloat(current.Price))
		}
	case controller.FieldLink:
		ti.Placeholder = "https://"
		ti.SetValue(current.Link)
	case controller.FieldNote:
		ti.Placeholder = "Note"
		ti.SetValue(current.Note)
	}
	ti.CursorEnd()

	// Focus before storing: the model is copied on every Update, so the
	// focused state has to be set on the value we keep.
	cmd := ti.Focus()
	a.editing = true
	a.input = ti
	return a, cmd
}

func (a App) updateCellEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field, _ := fieldForCol(a.col)

	switch msg.String() {
	case "esc":
		a.editing = false
		a.input.Blur()
		if !a.onDraft() {
			// Cancel: restore the snapshot, no request.
			if row, ok := a.selectedRow(); ok {
				a.ctrl.Revert(row.ID)
			}
		}
		return a, nil

	case "enter":
		a.editing = false
		a.input.Blur()
		if a.onDraft() {
			return a, nil
		}
		row, ok := a.selectedRow()
		if !ok {
			return a, nil
		}
		if updated, changed := a.ctrl.EndEdit(row.ID); changed {
			return a, saveRowCmd(a.api, updated)
		}
		return a, nil
	}

	// Every keystroke lands in the live state so typing is instantaneous.
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.onDraft() {
		a.ctrl.SetDraftField(field, a.input.Value())
	} else if row, ok := a.selectedRow(); ok {
		a.ctrl.SetField(row.ID, field, a.input.Value())
	}
	return a, cmd
}

func (a App) openConfirm(row model.Row) (tea.Model, tea.Cmd) {
	// The form writes through this pointer, so it must outlive the model
	// copies Bubble Tea makes between updates.
	val := new(bool)
	a.confirmVal = val
	a.confirmID = row.ID
	a.confirm = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", row.Title)).
			Description("This cannot be undone.").
			Affirmative("Yes, delete").
			Negative("Cancel").
			Value(val),
	))
	return a, a.confirm.Init()
}

func (a App) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.confirm = f
	}

	if a.confirm.State == huh.StateCompleted {
		id := a.confirmID
		confirmed := a.confirmVal != nil && *a.confirmVal
		a.confirm = nil
		a.confirmVal = nil
		a.confirmID = ""
		if confirmed {
			return a, deleteRowCmd(a.api, id)
		}
		return a, nil
	}

	if a.confirm.State == huh.StateAborted {
		a.confirm = nil
		a.confirmVal = nil
		a.confirmID = ""
		return a, nil
	}

	return a, cmd
}
