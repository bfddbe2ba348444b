// Package model defines the budgetable row and its comparison rules.
package model

import (
	"math"
	"strconv"
	"strings"
)

// Status marks whether a row has been paid for.
type Status string

const (
	StatusPaid   Status = "Paid"
	StatusUnpaid Status = "Unpaid"
)

// Valid reports whether s is one of the two known statuses.
func (s Status) Valid() bool {
	return s == StatusPaid || s == StatusUnpaid
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusPaid {
		return StatusUnpaid
	}
	return StatusPaid
}

// Row is one purchasable item tracked by the system.
// ID is assigned by the store on creation and empty for unsaved drafts.
type Row struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Link   string  `json:"link"`
	Note   string  `json:"note,omitempty"`
	Status Status  `json:"status"`
}

// NewDraft returns an empty not-yet-persisted row with default status.
func NewDraft() Row {
	return Row{Status: StatusUnpaid}
}

// normalize trims a text field for comparison.
func normalize(s string) string {
	return strings.TrimSpace(s)
}

// Equal compares two row snapshots field by field, trimming text fields and
// coercing price through float64. IDs are not compared; equality is used to
// decide whether an edit warrants a network write.
func Equal(a, b Row) bool {
	if normalize(a.Title) != normalize(b.Title) {
		return false
	}
	if a.Price != b.Price {
		return false
	}
	if normalize(a.Link) != normalize(b.Link) {
		return false
	}
	if normalize(a.Note) != normalize(b.Note) {
		return false
	}
	return normalize(string(a.Status)) == normalize(string(b.Status))
}

// Total sums the price of all unpaid rows. Paid rows never contribute.
func Total(rows []Row) float64 {
	var sum float64
	for _, r := range rows {
		if r.Status == StatusUnpaid {
			sum += r.Price
		}
	}
	return sum
}

// ParsePrice converts raw user input to a price value.
// Unparseable or non-finite input yields 0, mirroring the add form's
// "empty means zero" behavior.
func ParsePrice(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ValidateNew checks the business rule for adding a row: a non-empty title
// and a strictly positive price. Editing an existing row does not
// re-enforce positivity.
func ValidateNew(r Row) bool {
	return normalize(r.Title) != "" && r.Price > 0
}
