package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/addlab/issuetrack/internal/model"
	"github.com/addlab/issuetrack/internal/report"
	"github.com/addlab/issuetrack/internal/sheet"
	"github.com/addlab/issuetrack/internal/store"
)

// xlsxContentType is the MIME type of the export download.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "marshal error: "+err.Error())
		return
	}
	w.WriteHeader(status)
	w.Write(data)
}

func readJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeStoreError maps store failures to HTTP statuses: validation
// failures are the caller's fault, an unreachable backing medium is a
// bad gateway. Store failures are terminal for the operation; there are
// no retries.
func writeStoreError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, sheet.ErrUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

func (d *Daemon) health(w http.ResponseWriter, r *http.Request) {
	table, err := d.store.Load(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	resp := map[string]interface{}{
		"status":  "ok",
		"backend": d.cfg.Backend,
		"issues":  len(table),
	}

	// Include uptime if the daemon has been started via Run().
	if !d.startedAt.IsZero() {
		resp["uptime"] = time.Since(d.startedAt).Round(time.Second).String()
	}

	writeJSON(w, http.StatusOK, resp)
}

// ---------------------------------------------------------------------------
// Issues
// ---------------------------------------------------------------------------

// IssueList is the response of GET /issues: the matching rows plus the
// showing/total counts the view page displays.
type IssueList struct {
	Issues  []model.Issue `json:"issues"`
	Showing int           `json:"showing"`
	Total   int           `json:"total"`
}

// listIssues loads the table and applies the optional ?q= keyword
// filter. Every request re-reads the backing medium, so a plain reload
// of the page picks up other writers.
func (d *Daemon) listIssues(w http.ResponseWriter, r *http.Request) {
	table, err := d.store.Load(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	filtered := report.Search(table, r.URL.Query().Get("q"))
	if filtered == nil {
		filtered = model.Table{}
	}

	writeJSON(w, http.StatusOK, IssueList{
		Issues:  filtered,
		Showing: len(filtered),
		Total:   len(table),
	})
}

// CreateIssueRequest holds the parameters for reporting an issue. The
// ID and report time are assigned server-side.
type CreateIssueRequest struct {
	ReportedBy     string   `json:"reported_by,omitempty"`
	Category       string   `json:"category"`
	Subcategories  []string `json:"subcategories,omitempty"`
	LabSections    []string `json:"lab_sections,omitempty"`
	Species        []string `json:"species,omitempty"`
	Description    string   `json:"description"`
	ActionTaken    string   `json:"action_taken,omitempty"`
	ResolutionDate string   `json:"resolution_date,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

func (d *Daemon) createIssue(w http.ResponseWriter, r *http.Request) {
	var req CreateIssueRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ResolutionDate != "" {
		if _, err := time.Parse(model.ResolutionDateLayout, req.ResolutionDate); err != nil {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("invalid resolution_date %q, want YYYY-MM-DD", req.ResolutionDate))
			return
		}
	}

	iss := model.Issue{
		ReportedBy:     req.ReportedBy,
		Category:       model.Category(req.Category),
		Subcategories:  req.Subcategories,
		LabSections:    req.LabSections,
		Species:        req.Species,
		Description:    req.Description,
		ActionTaken:    req.ActionTaken,
		ResolutionDate: req.ResolutionDate,
		Notes:          req.Notes,
	}
	if err := iss.Validate(); err != nil {
		writeStoreError(w, err)
		return
	}

	// Serialize appends from this process; the reload inside Append
	// still picks up external writers.
	d.appendMu.Lock()
	_, created, err := d.store.Append(r.Context(), iss)
	d.appendMu.Unlock()
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// exportIssues serves the current table as an xlsx download with a
// date-stamped filename.
func (d *Daemon) exportIssues(w http.ResponseWriter, r *http.Request) {
	table, err := d.store.Load(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	blob, err := store.Export(table)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := store.ExportFilename(time.Now())
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(blob)
}

// ---------------------------------------------------------------------------
// Dashboard and vocabularies
// ---------------------------------------------------------------------------

func (d *Daemon) dashboard(w http.ResponseWriter, r *http.Request) {
	table, err := d.store.Load(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report.BuildDashboard(table))
}

// vocab serves the fixed selection lists the entry form renders:
// categories, their subcategory vocabularies, lab sections, and species.
func (d *Daemon) vocab(w http.ResponseWriter, r *http.Request) {
	subcats := make(map[string][]string)
	for _, c := range model.Categories {
		if v := model.SubcategoriesFor(c); v != nil {
			subcats[string(c)] = v
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories":    model.Categories,
		"subcategories": subcats,
		"lab_sections":  model.LabSections,
		"species":       model.SpeciesList,
	})
}
