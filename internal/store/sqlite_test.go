package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"budgetable/internal/model"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "budgetable.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, model.Row{Title: "Book", Price: 1000})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("no id assigned")
	}
	if created.Status != model.StatusUnpaid {
		t.Fatalf("status = %s, want default Unpaid", created.Status)
	}
}

func TestCreateThenListPreservesInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := s.Create(ctx, model.Row{Title: title, Price: 1}); err != nil {
			t.Fatalf("Create %q: %v", title, err)
		}
	}

	rows, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != len(titles) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(titles))
	}
	for i, title := range titles {
		if rows[i].Title != title {
			t.Fatalf("rows[%d].Title = %q, want %q", i, rows[i].Title, title)
		}
	}
}

func TestListEmptyIsNotNil(t *testing.T) {
	s := openTestStore(t)

	rows, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if rows == nil {
		t.Fatal("empty list must be a non-nil slice so it encodes as []")
	}
}

func TestGetUpdateDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, model.Row{Title: "Book", Price: 1000, Link: "https://x", Note: "n"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !model.Equal(got, created) {
		t.Fatalf("got %+v, want %+v", got, created)
	}

	created.Status = model.StatusPaid
	created.Price = 900
	updated, err := s.Update(ctx, created.ID, created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != model.StatusPaid || updated.Price != 900 {
		t.Fatalf("updated = %+v", updated)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete err = %v, want ErrNotFound", err)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Update(context.Background(), "missing", model.Row{Title: "x", Price: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteUnknownID(t *testing.T) {
	s := openTestStore(t)

	if err := s.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, model.Row{Title: "a", Price: 1})
	b, _ := s.Create(ctx, model.Row{Title: "b", Price: 2})

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	rows, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != b.ID {
		t.Fatalf("rows after delete = %+v", rows)
	}
}
