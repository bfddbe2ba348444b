package httpapi

import "net/http"

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/pocketbase", app.rowsHandler)
	mux.HandleFunc("/pocketbase/", app.rowHandler)
	mux.HandleFunc("/health", app.healthHandler)
	return WithRequestID(WithLogging(mux))
}
