package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"budgetable/internal/model"
)

func TestListAndCreate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pocketbase", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode([]model.Row{{ID: "a", Title: "Book", Price: 1000, Status: model.StatusUnpaid}})
		case http.MethodPost:
			var row model.Row
			_ = json.NewDecoder(r.Body).Decode(&row)
			row.ID = "srv1"
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(row)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL + "/")
	ctx := context.Background()

	rows, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "a" {
		t.Fatalf("rows = %+v", rows)
	}

	created, err := c.Create(ctx, model.Row{Title: "Lamp", Price: 500, Status: model.StatusUnpaid})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "srv1" {
		t.Fatalf("created id = %q, want srv1", created.ID)
	}
}

func TestErrorEnvelopeSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid data provided."}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Create(context.Background(), model.Row{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Invalid data provided.") {
		t.Fatalf("err = %v, want envelope message surfaced", err)
	}
}

func TestUpdateSendsRowID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var row model.Row
		_ = json.NewDecoder(r.Body).Decode(&row)
		_ = json.NewEncoder(w).Encode(row)
	}))
	defer srv.Close()

	c := New(srv.URL)
	row := model.Row{ID: "r1", Title: "Book", Price: 1000, Status: model.StatusPaid}
	updated, err := c.Update(context.Background(), row)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gotPath != "/pocketbase/r1" {
		t.Fatalf("path = %q, want /pocketbase/r1", gotPath)
	}
	if updated.Status != model.StatusPaid {
		t.Fatalf("status = %s", updated.Status)
	}
}

func TestDeleteAndHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Delete(context.Background(), "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}
