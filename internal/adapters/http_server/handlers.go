package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"monopoly_report/internal/adapters/observability"
	"monopoly_report/internal/domain"
)

// ReportQuerier is satisfied by *app.QueryService.
type ReportQuerier interface {
	GetReport(ctx context.Context) (domain.ReportView, error)
}

type Handlers struct{ Q ReportQuerier }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type summaryResponse struct {
	Total    int            `json:"total"`
	Rendered int            `json:"rendered"`
	Skipped  []skippedEntry `json:"skipped"`
}

type skippedEntry struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.reportHTML)
	s.mux.Get("/report.html", h.reportHTML)
	s.mux.Get("/report.txt", h.reportText)
	s.mux.Get("/v1/report/summary", h.reportSummary)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// weakETag hashes a response body.
func weakETag(body []byte) string {
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`
}

// load runs one report pass and maps failures to problem responses.
func (h *Handlers) load(w http.ResponseWriter, r *http.Request) (domain.ReportView, bool) {
	rv, err := h.Q.GetReport(r.Context())
	// cache hits served no new pass
	if err != nil || !rv.Cached {
		observability.ObserveReport(rv.Summary.Rendered, len(rv.Summary.Skipped), err)
	}
	if err == nil {
		return rv, true
	}

	var fe *domain.FieldError
	switch {
	case errors.Is(err, domain.ErrSourceUnavailable):
		log.Error().Err(err).Msg("properties source unavailable")
		writeProblem(w, http.StatusServiceUnavailable, "Source Unavailable", "properties document could not be loaded")
	case errors.As(err, &fe):
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Property Record", fe.Error())
	default:
		log.Error().Err(err).Msg("report failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
	return domain.ReportView{}, false
}

func writeBody(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	etag := weakETag(body)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) reportHTML(w http.ResponseWriter, r *http.Request) {
	rv, ok := h.load(w, r)
	if !ok {
		return
	}
	writeBody(w, r, "text/html; charset=utf-8", []byte(rv.HTML))
}

func (h *Handlers) reportText(w http.ResponseWriter, r *http.Request) {
	rv, ok := h.load(w, r)
	if !ok {
		return
	}
	writeBody(w, r, "text/plain; charset=utf-8", []byte(rv.Narrative))
}

func (h *Handlers) reportSummary(w http.ResponseWriter, r *http.Request) {
	rv, ok := h.load(w, r)
	if !ok {
		return
	}
	resp := summaryResponse{Total: rv.Summary.Total, Rendered: rv.Summary.Rendered, Skipped: []skippedEntry{}}
	for _, fe := range rv.Summary.Skipped {
		resp.Skipped = append(resp.Skipped, skippedEntry{Index: fe.Index, Name: fe.Name, Field: fe.Field, Reason: fe.Reason})
	}
	body, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal summary")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeBody(w, r, "application/json", body)
}
