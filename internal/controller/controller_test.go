package controller

import (
	"testing"

	"budgetable/internal/model"
)

func seeded() *Controller {
	c := New()
	c.SetRows([]model.Row{
		{ID: "r1", Title: "Book", Price: 1000, Status: model.StatusUnpaid},
		{ID: "r2", Title: "Lamp", Price: 500, Status: model.StatusPaid},
	})
	return c
}

func TestEndEditSuppressesNoopWrites(t *testing.T) {
	c := seeded()

	if !c.BeginEdit("r1") {
		t.Fatal("BeginEdit failed for known id")
	}
	// Whitespace-only change falls under the trimmed equality rule.
	c.SetField("r1", FieldTitle, "  Book ")

	if _, changed := c.EndEdit("r1"); changed {
		t.Fatal("no-op edit produced a write")
	}
	if c.Editing("r1") {
		t.Fatal("edit session not closed after no-op")
	}
}

func TestEndEditReturnsChangedRow(t *testing.T) {
	c := seeded()

	c.BeginEdit("r1")
	c.SetField("r1", FieldPrice, "1500")

	row, changed := c.EndEdit("r1")
	if !changed {
		t.Fatal("changed edit reported as no-op")
	}
	if row.Price != 1500 {
		t.Fatalf("pending row price = %v, want 1500", row.Price)
	}
	if !c.Editing("r1") {
		t.Fatal("session must stay open until Commit or Revert")
	}
}

func TestCommitInstallsServerCopyAndMarks(t *testing.T) {
	c := seeded()

	c.BeginEdit("r1")
	c.SetField("r1", FieldTitle, "Books")
	if _, changed := c.EndEdit("r1"); !changed {
		t.Fatal("edit not detected")
	}

	server := model.Row{ID: "r1", Title: "Books", Price: 1000, Status: model.StatusUnpaid}
	gen := c.Commit(server)

	got, _ := c.Row("r1")
	if got.Title != "Books" {
		t.Fatalf("row title = %q, want server copy", got.Title)
	}
	if c.Editing("r1") {
		t.Fatal("session still open after Commit")
	}
	if !c.Marked("r1") {
		t.Fatal("recently-updated marker not armed")
	}

	c.ClearMark("r1", gen)
	if c.Marked("r1") {
		t.Fatal("marker not cleared")
	}
}

func TestStaleMarkerClearIsIgnored(t *testing.T) {
	c := seeded()

	gen1 := c.Commit(model.Row{ID: "r1", Title: "Book", Price: 1000, Status: model.StatusUnpaid})
	gen2 := c.Commit(model.Row{ID: "r1", Title: "Book", Price: 1100, Status: model.StatusUnpaid})

	c.ClearMark("r1", gen1)
	if !c.Marked("r1") {
		t.Fatal("stale clear cancelled a newer marker")
	}
	c.ClearMark("r1", gen2)
	if c.Marked("r1") {
		t.Fatal("current clear ignored")
	}
}

func TestRevertRestoresSnapshot(t *testing.T) {
	c := seeded()

	c.BeginEdit("r1")
	c.SetField("r1", FieldTitle, "Wrong")
	if _, changed := c.EndEdit("r1"); !changed {
		t.Fatal("edit not detected")
	}

	c.Revert("r1")

	got, _ := c.Row("r1")
	if got.Title != "Book" {
		t.Fatalf("row title after revert = %q, want original", got.Title)
	}
	if c.Editing("r1") {
		t.Fatal("session still open after Revert")
	}
}

func TestBeginEditDoesNotOverwriteSnapshot(t *testing.T) {
	c := seeded()

	c.BeginEdit("r1")
	c.SetField("r1", FieldTitle, "Changed")
	// A second focus event mid-edit must keep the original snapshot.
	c.BeginEdit("r1")
	c.Revert("r1")

	got, _ := c.Row("r1")
	if got.Title != "Book" {
		t.Fatalf("snapshot overwritten: title = %q", got.Title)
	}
}

func TestToggleStatusChangesOnlyStatus(t *testing.T) {
	c := seeded()

	updated, ok := c.ToggleStatus("r1")
	if !ok {
		t.Fatal("ToggleStatus failed for known id")
	}
	if updated.Status != model.StatusPaid {
		t.Fatalf("status = %s, want Paid", updated.Status)
	}

	orig, _ := c.Row("r1")
	if orig.Status != model.StatusUnpaid {
		t.Fatal("local row mutated before Commit")
	}

	want := orig
	want.Status = updated.Status
	if !model.Equal(updated, want) {
		t.Fatal("toggle changed a field other than status")
	}
}

func TestDraftValidation(t *testing.T) {
	c := New()

	if err := c.ValidateDraft(); err == nil {
		t.Fatal("empty draft accepted")
	}

	c.SetDraftField(FieldTitle, "Book")
	if err := c.ValidateDraft(); err == nil {
		t.Fatal("draft without price accepted")
	}

	c.SetDraftField(FieldPrice, "-5")
	if err := c.ValidateDraft(); err == nil {
		t.Fatal("negative price accepted")
	}

	c.SetDraftField(FieldPrice, "1000")
	if err := c.ValidateDraft(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
}

func TestAppendResetsDraft(t *testing.T) {
	c := New()
	c.SetDraftField(FieldTitle, "Book")
	c.SetDraftField(FieldPrice, "1000")

	c.Append(model.Row{ID: "srv1", Title: "Book", Price: 1000, Status: model.StatusUnpaid})

	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	d := c.Draft()
	if d.Title != "" || d.Price != 0 || d.Status != model.StatusUnpaid {
		t.Fatalf("draft not reset to defaults: %+v", d)
	}
}

func TestRemoveDeletesExactlyOneRow(t *testing.T) {
	c := seeded()

	c.Remove("r1")

	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	if _, ok := c.Row("r1"); ok {
		t.Fatal("removed row still present")
	}
	if _, ok := c.Row("r2"); !ok {
		t.Fatal("unrelated row removed")
	}
}

// Add a row, mark it paid, then delete it: the outstanding total must
// rise by the price, fall back to baseline, and stay there.
func TestAddTogglePayDeleteScenario(t *testing.T) {
	c := seeded()
	baseline := c.Total()

	c.SetDraftField(FieldTitle, "Book 2")
	c.SetDraftField(FieldPrice, "1000")
	if err := c.ValidateDraft(); err != nil {
		t.Fatalf("draft invalid: %v", err)
	}
	added := model.Row{ID: "r3", Title: "Book 2", Price: 1000, Link: "", Note: "", Status: model.StatusUnpaid}
	c.Append(added)

	if got := c.Total(); got != baseline+1000 {
		t.Fatalf("total after add = %v, want %v", got, baseline+1000)
	}

	updated, ok := c.ToggleStatus("r3")
	if !ok {
		t.Fatal("toggle failed")
	}
	c.Commit(updated)

	if got := c.Total(); got != baseline {
		t.Fatalf("total after paying = %v, want baseline %v", got, baseline)
	}

	lenBefore := c.Len()
	c.Remove("r3")
	if c.Len() != lenBefore-1 {
		t.Fatalf("len after delete = %d, want %d", c.Len(), lenBefore-1)
	}
	if got := c.Total(); got != baseline {
		t.Fatalf("total after delete = %v, want unchanged %v", got, baseline)
	}
}

func TestSetRowsDropsOpenSessions(t *testing.T) {
	c := seeded()
	c.BeginEdit("r1")

	c.SetRows([]model.Row{{ID: "r1", Title: "Book", Price: 1000, Status: model.StatusUnpaid}})

	if c.Editing("r1") {
		t.Fatal("edit session survived a list replacement")
	}
}
