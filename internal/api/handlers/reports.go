package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/rakshithn/ecommerce-pipeline/internal/api/middleware"
	"github.com/rakshithn/ecommerce-pipeline/internal/store"
)

const (
	defaultRangeDays = 30
	defaultTopLimit  = 10
	maxTopLimit      = 100
)

// ReportStore provides the aggregate queries behind the dashboard endpoints.
type ReportStore interface {
	KPIs(ctx context.Context, f store.ReportFilter) (*store.KPISummary, error)
	RevenueTrend(ctx context.Context, f store.ReportFilter) ([]store.TrendPoint, error)
	RevenueByCategory(ctx context.Context, f store.ReportFilter) ([]store.RevenueSlice, error)
	RevenueByRegion(ctx context.Context, f store.ReportFilter) ([]store.RevenueSlice, error)
	SegmentBreakdown(ctx context.Context, f store.ReportFilter) ([]store.RevenueSlice, error)
	TopProducts(ctx context.Context, f store.ReportFilter, limit int) ([]store.TopProduct, error)
	AllowedRegions(ctx context.Context) ([]string, error)
}

// ReportsHandler handles dashboard reporting endpoints.
type ReportsHandler struct {
	store ReportStore
	log   zerolog.Logger
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(store ReportStore, log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{
		store: store,
		log:   log,
	}
}

// parseFilter builds a ReportFilter from query parameters. The regions
// parameter is validated against the regions present in the warehouse so an
// arbitrary value cannot reach the SQL layer.
func (h *ReportsHandler) parseFilter(r *http.Request) (store.ReportFilter, error) {
	query := r.URL.Query()

	var f store.ReportFilter
	var err error

	if endStr := query.Get("end_date"); endStr != "" {
		f.To, err = civil.ParseDate(endStr)
		if err != nil {
			return f, fmt.Errorf("invalid end_date %q, expected YYYY-MM-DD", endStr)
		}
	} else {
		f.To = civil.DateOf(time.Now())
	}

	if startStr := query.Get("start_date"); startStr != "" {
		f.From, err = civil.ParseDate(startStr)
		if err != nil {
			return f, fmt.Errorf("invalid start_date %q, expected YYYY-MM-DD", startStr)
		}
	} else {
		f.From = f.To.AddDays(-defaultRangeDays)
	}

	if f.To.Before(f.From) {
		return f, fmt.Errorf("end_date %s is before start_date %s", f.To, f.From)
	}

	if regionsStr := query.Get("regions"); regionsStr != "" {
		requested := strings.Split(regionsStr, ",")
		allowed, err := h.store.AllowedRegions(r.Context())
		if err != nil {
			return f, fmt.Errorf("load regions: %w", err)
		}
		for _, region := range requested {
			region = strings.TrimSpace(region)
			if region == "" {
				continue
			}
			if !contains(allowed, region) {
				return f, fmt.Errorf("unknown region %q", region)
			}
			f.Regions = append(f.Regions, region)
		}
	}

	return f, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// GetKPIs handles GET /api/reports/kpis
func (h *ReportsHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseFilter(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	kpis, err := h.store.KPIs(r.Context(), f)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load KPIs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load KPIs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, kpis)
}

// GetTrend handles GET /api/reports/trend
func (h *ReportsHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseFilter(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	points, err := h.store.RevenueTrend(r.Context(), f)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load revenue trend")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load revenue trend")
		return
	}

	if points == nil {
		points = []store.TrendPoint{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"points": points,
		"count":  len(points),
	})
}

// GetRevenueByCategory handles GET /api/reports/categories
func (h *ReportsHandler) GetRevenueByCategory(w http.ResponseWriter, r *http.Request) {
	h.writeSlices(w, r, "category revenue", h.store.RevenueByCategory)
}

// GetRevenueByRegion handles GET /api/reports/regions
func (h *ReportsHandler) GetRevenueByRegion(w http.ResponseWriter, r *http.Request) {
	h.writeSlices(w, r, "region revenue", h.store.RevenueByRegion)
}

// GetSegments handles GET /api/reports/segments
func (h *ReportsHandler) GetSegments(w http.ResponseWriter, r *http.Request) {
	h.writeSlices(w, r, "segment breakdown", h.store.SegmentBreakdown)
}

func (h *ReportsHandler) writeSlices(w http.ResponseWriter, r *http.Request, what string, load func(context.Context, store.ReportFilter) ([]store.RevenueSlice, error)) {
	f, err := h.parseFilter(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	slices, err := load(r.Context(), f)
	if err != nil {
		h.log.Error().Err(err).Msgf("Failed to load %s", what)
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load "+what)
		return
	}

	if slices == nil {
		slices = []store.RevenueSlice{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"slices": slices,
		"count":  len(slices),
	})
}

// GetTopProducts handles GET /api/reports/products
func (h *ReportsHandler) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseFilter(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := defaultTopLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxTopLimit {
			middleware.WriteError(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxTopLimit))
			return
		}
	}

	products, err := h.store.TopProducts(r.Context(), f, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load top products")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load top products")
		return
	}

	if products == nil {
		products = []store.TopProduct{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// ListRegions handles GET /api/regions
func (h *ReportsHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.store.AllowedRegions(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list regions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list regions")
		return
	}

	if regions == nil {
		regions = []string{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"regions": regions,
		"count":   len(regions),
	})
}
