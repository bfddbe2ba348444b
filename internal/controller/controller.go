// Package controller keeps the displayed row collection consistent with
// the remote store under optimistic, field-level editing. It is free of any
// UI or network dependency so the reconciliation rules can be tested in
// isolation; the TUI drives it and performs the actual requests.
package controller

import (
	"errors"

	"budgetable/internal/model"
)

// ErrDraftInvalid is returned when the draft row fails the add rule.
var ErrDraftInvalid = errors.New("title and a positive price are required")

// Field names an editable row field.
type Field int

const (
	FieldTitle Field = iota
	FieldPrice
	FieldLink
	FieldNote
)

// Controller owns the in-memory row list, the draft row under construction
// and the per-row edit sessions. Each row is either idle or editing; an
// editing row carries the snapshot captured when the edit session began.
type Controller struct {
	rows  []model.Row
	draft model.Row
	edits map[string]model.Row
	marks map[string]int
}

// New creates an empty controller with a default draft.
func New() *Controller {
	return &Controller{
		draft: model.NewDraft(),
		edits: make(map[string]model.Row),
		marks: make(map[string]int),
	}
}

// SetRows replaces the row list, dropping any in-flight edit sessions.
func (c *Controller) SetRows(rows []model.Row) {
	c.rows = append(c.rows[:0:0], rows...)
	c.edits = make(map[string]model.Row)
	c.marks = make(map[string]int)
}

// Rows returns the rows in display order.
func (c *Controller) Rows() []model.Row {
	return c.rows
}

// Row returns the row with the given id.
func (c *Controller) Row(id string) (model.Row, bool) {
	if i := c.index(id); i >= 0 {
		return c.rows[i], true
	}
	return model.Row{}, false
}

// Len returns the number of rows.
func (c *Controller) Len() int {
	return len(c.rows)
}

// Total is the outstanding amount: the sum over unpaid rows.
func (c *Controller) Total() float64 {
	return model.Total(c.rows)
}

func (c *Controller) index(id string) int {
	for i, r := range c.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// BeginEdit captures the row's current values as the edit snapshot. A
// second call for the same id while the session is open is a no-op, so a
// focus event never overwrites the original values mid-edit.
func (c *Controller) BeginEdit(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	if _, open := c.edits[id]; !open {
		c.edits[id] = c.rows[i]
	}
	return true
}

// Editing reports whether an edit session is open for the row.
func (c *Controller) Editing(id string) bool {
	_, open := c.edits[id]
	return open
}

// SetField applies raw input to the live row so typing is reflected
// immediately. Price input is coerced to a number, unparseable input
// becoming zero.
func (c *Controller) SetField(id string, f Field, raw string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	applyField(&c.rows[i], f, raw)
	return true
}

// EndEdit closes the typing phase of an edit session. If the live row
// still equals the snapshot no write is needed and the session ends. If it
// changed, the session stays open (awaiting Commit or Revert) and the row
// to persist is returned.
func (c *Controller) EndEdit(id string) (model.Row, bool) {
	snap, open := c.edits[id]
	if !open {
		return model.Row{}, false
	}
	i := c.index(id)
	if i < 0 {
		delete(c.edits, id)
		return model.Row{}, false
	}
	if model.Equal(c.rows[i], snap) {
		delete(c.edits, id)
		return model.Row{}, false
	}
	return c.rows[i], true
}

// Commit installs the server's authoritative copy of a row, closes its
// edit session and arms the recently-updated marker. The returned
// generation must be passed back to ClearMark so a stale timer never
// clears a marker re-armed by a later update.
func (c *Controller) Commit(server model.Row) int {
	if i := c.index(server.ID); i >= 0 {
		c.rows[i] = server
	}
	delete(c.edits, server.ID)
	c.marks[server.ID]++
	return c.marks[server.ID]
}

// Revert restores the snapshot after a failed write, leaving the row as it
// was before the edit session began.
func (c *Controller) Revert(id string) {
	snap, open := c.edits[id]
	if !open {
		return
	}
	if i := c.index(id); i >= 0 {
		c.rows[i] = snap
	}
	delete(c.edits, id)
}

// ToggleStatus returns a copy of the row with its status flipped, to be
// persisted through the same update path as a field edit. The local row is
// untouched until Commit.
func (c *Controller) ToggleStatus(id string) (model.Row, bool) {
	i := c.index(id)
	if i < 0 {
		return model.Row{}, false
	}
	row := c.rows[i]
	row.Status = row.Status.Toggle()
	return row, true
}

// Marked reports whether the row carries the recently-updated marker.
func (c *Controller) Marked(id string) bool {
	return c.marks[id] > 0
}

// ClearMark clears the marker only if gen is still the current generation.
func (c *Controller) ClearMark(id string, gen int) {
	if c.marks[id] == gen {
		delete(c.marks, id)
	}
}

// Draft returns the not-yet-persisted row under construction.
func (c *Controller) Draft() model.Row {
	return c.draft
}

// SetDraftField applies raw input to the draft row.
func (c *Controller) SetDraftField(f Field, raw string) {
	applyField(&c.draft, f, raw)
}

// ValidateDraft checks the add rule: non-empty title and price > 0.
func (c *Controller) ValidateDraft() error {
	if !model.ValidateNew(c.draft) {
		return ErrDraftInvalid
	}
	return nil
}

// Append adds the server-assigned row to the end of the list and resets
// the draft to defaults.
func (c *Controller) Append(server model.Row) {
	c.rows = append(c.rows, server)
	c.draft = model.NewDraft()
}

// Remove deletes the row with the given id from the local list.
func (c *Controller) Remove(id string) {
	if i := c.index(id); i >= 0 {
		c.rows = append(c.rows[:i], c.rows[i+1:]...)
	}
	delete(c.edits, id)
	delete(c.marks, id)
}

func applyField(r *model.Row, f Field, raw string) {
	switch f {
	case FieldTitle:
		r.Title = raw
	case FieldPrice:
		r.Price = model.ParsePrice(raw)
	case FieldLink:
		r.Link = raw
	case FieldNote:
		r.Note = raw
	}
}
