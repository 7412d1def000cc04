package daemon

import "net/http"

// registerRoutes sets up all API routes on a new ServeMux and returns it.
func (d *Daemon) registerRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", d.health)

	// Issues: register /issues/export BEFORE /issues so the literal
	// route matches first.
	mux.HandleFunc("GET /issues/export", d.exportIssues)
	mux.HandleFunc("GET /issues", d.listIssues)
	mux.HandleFunc("POST /issues", d.createIssue)

	// Dashboard aggregates and form vocabularies.
	mux.HandleFunc("GET /dashboard", d.dashboard)
	mux.HandleFunc("GET /vocab", d.vocab)

	return mux
}
