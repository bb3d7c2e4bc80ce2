package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/relasi-app/relasi-core/pkg/adapters"
	"github.com/relasi-app/relasi-core/pkg/models/api"
	"github.com/relasi-app/relasi-core/pkg/services/pdf"
	"github.com/relasi-app/relasi-core/pkg/store/client"
	"github.com/rs/zerolog"
)

// Source is the slice of the backend the report handler reads from.
type Source interface {
	Report(ctx context.Context, reportID string) (*api.Report, error)
}

// Materializer produces a report for an assessment, generating if needed.
type Materializer interface {
	EnsureReport(ctx context.Context, assessmentID string) (*api.Report, error)
}

type Handler struct {
	source       Source
	materializer Materializer
	generator    *pdf.Generator
	cache        *expirable.LRU[string, *pdf.Result]
}

func NewHandler(source Source, materializer Materializer, generator *pdf.Generator, cache *expirable.LRU[string, *pdf.Result]) *Handler {
	return &Handler{
		source:       source,
		materializer: materializer,
		generator:    generator,
		cache:        cache,
	}
}

// GetReportPDF streams the generated document for a known report id.
func (h *Handler) GetReportPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reportID := chi.URLParam(r, "reportID")

	if h.cache != nil {
		if res, ok := h.cache.Get(reportID); ok {
			writePDF(w, res)
			return
		}
	}

	raw, err := h.source.Report(ctx, reportID)
	if err != nil {
		h.writeFetchError(ctx, w, err)
		return
	}

	h.compose(ctx, w, reportID, raw)
}

// GetAssessmentPDF resolves (or generates) the report for an assessment and
// streams the document.
func (h *Handler) GetAssessmentPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	assessmentID := chi.URLParam(r, "assessmentID")
	cacheKey := "assessment:" + assessmentID

	if h.cache != nil {
		if res, ok := h.cache.Get(cacheKey); ok {
			writePDF(w, res)
			return
		}
	}

	raw, err := h.materializer.EnsureReport(ctx, assessmentID)
	if err != nil {
		h.writeFetchError(ctx, w, err)
		return
	}

	h.compose(ctx, w, cacheKey, raw)
}

func (h *Handler) compose(ctx context.Context, w http.ResponseWriter, cacheKey string, raw *api.Report) {
	logger := zerolog.Ctx(ctx)

	doc, err := adapters.MapReportApiToDomain(raw)
	if err != nil {
		logger.Error().Err(err).Msg("malformed report payload")
		writeError(w, http.StatusInternalServerError, "report generation failed")
		return
	}

	res, err := h.generator.Build(doc)
	if err != nil {
		// partial artifacts are discarded inside the generator
		logger.Error().Err(err).Str("report", doc.ID).Msg("document composition failed")
		writeError(w, http.StatusInternalServerError, "report generation failed")
		return
	}

	if h.cache != nil {
		h.cache.Add(cacheKey, res)
	}
	writePDF(w, res)
}

func (h *Handler) writeFetchError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := zerolog.Ctx(ctx)
	if errors.Is(err, client.ErrNotFound) {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	logger.Error().Err(err).Msg("failed to fetch report")
	writeError(w, http.StatusBadGateway, "report service unavailable")
}

func writePDF(w http.ResponseWriter, res *pdf.Result) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Message: message})
}
