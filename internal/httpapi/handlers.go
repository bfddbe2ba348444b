package httpapi

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"

	"budgetable/internal/model"
	"budgetable/internal/obs"
	"budgetable/internal/store"
)

// App holds the handler dependencies.
type App struct {
	Store store.Store
}

// NewApp creates the handler set on top of the given record store.
func NewApp(st store.Store) *App {
	return &App{Store: st}
}

// rowInput is the decoded request body for create and update. Price is a
// pointer so an absent field is distinguishable from zero.
type rowInput struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Price  *float64     `json:"price"`
	Link   string       `json:"link"`
	Note   string       `json:"note"`
	Status model.Status `json:"status"`
}

// validate checks the shared body rules: a truthy title and a finite
// numeric price. requirePositive additionally enforces price > 0, the rule
// for adding new rows.
func (in rowInput) validate(requirePositive bool) (model.Row, bool) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Row{}, false
	}
	if in.Price == nil || math.IsNaN(*in.Price) || math.IsInf(*in.Price, 0) {
		return model.Row{}, false
	}
	if requirePositive && *in.Price <= 0 {
		return model.Row{}, false
	}

	status := in.Status
	if status == "" {
		status = model.StatusUnpaid
	}
	if !status.Valid() {
		return model.Row{}, false
	}

	return model.Row{
		Title:  in.Title,
		Price:  *in.Price,
		Link:   in.Link,
		Note:   in.Note,
		Status: status,
	}, true
}

// rowsHandler serves the collection path: list and create.
func (a *App) rowsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listRows(w, r)
	case http.MethodPost:
		a.createRow(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, response{http.StatusMethodNotAllowed, "Method not allowed."}, nil)
	}
}

func (a *App) listRows(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Ensure(r.Context()); err != nil {
		obs.Logger.Error("store_auth_failed", "error", err.Error())
		writeError(w, respFailedFetch, nil)
		return
	}

	rows, err := a.Store.List(r.Context())
	if err != nil {
		obs.Logger.Error("list_failed", "error", err.Error())
		writeError(w, respFailedFetch, nil)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (a *App) createRow(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Ensure(r.Context()); err != nil {
		obs.Logger.Error("store_auth_failed", "error", err.Error())
		writeError(w, respFailedAdd, nil)
		return
	}

	var in rowInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, respInvalidData, nil)
		return
	}
	row, ok := in.validate(true)
	if !ok {
		writeError(w, respInvalidData, nil)
		return
	}

	created, err := a.Store.Create(r.Context(), row)
	if err != nil {
		obs.Logger.Error("create_failed", "error", err.Error())
		writeError(w, respFailedAdd, nil)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// rowHandler serves the item path: get, update, delete by id.
func (a *App) rowHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.getRow(w, r)
	case http.MethodPut:
		a.updateRow(w, r)
	case http.MethodDelete:
		a.deleteRow(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		writeError(w, response{http.StatusMethodNotAllowed, "Method not allowed."}, nil)
	}
}

// pathID extracts the record id from an item-scoped request path.
func pathID(r *http.Request) string {
	id := strings.TrimPrefix(r.URL.Path, "/pocketbase/")
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

func (a *App) getRow(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Ensure(r.Context()); err != nil {
		obs.Logger.Error("store_auth_failed", "error", err.Error())
		writeError(w, respFailedFetch, nil)
		return
	}

	id := pathID(r)
	if id == "" {
		writeError(w, respMissingID, nil)
		return
	}

	row, err := a.Store.Get(r.Context(), id)
	if err != nil {
		obs.Logger.Error("get_failed", "id", id, "error", err.Error())
		writeError(w, respFailedFetch, nil)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *App) updateRow(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Ensure(r.Context()); err != nil {
		obs.Logger.Error("store_auth_failed", "error", err.Error())
		writeError(w, respFailedUpdate, nil)
		return
	}

	id := pathID(r)
	if id == "" {
		writeError(w, respMissingID, nil)
		return
	}

	var in rowInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, respInvalidData, nil)
		return
	}
	row, ok := in.validate(false)
	if !ok {
		writeError(w, respInvalidData, nil)
		return
	}

	updated, err := a.Store.Update(r.Context(), id, row)
	if err != nil {
		obs.Logger.Error("update_failed", "id", id, "error", err.Error())
		writeError(w, respFailedUpdate, nil)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *App) deleteRow(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Ensure(r.Context()); err != nil {
		obs.Logger.Error("store_auth_failed", "error", err.Error())
		writeError(w, respFailedDelete, nil)
		return
	}

	id := pathID(r)
	if id == "" {
		writeError(w, respMissingID, nil)
		return
	}

	if err := a.Store.Delete(r.Context(), id); err != nil {
		obs.Logger.Error("delete_failed", "id", id, "error", err.Error())
		writeError(w, respFailedDelete, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
