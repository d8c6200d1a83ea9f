package handlers

import (
	"net/http"
	"strconv"

	"github.com/pribylovaa/go-news-trending/internal/service"
	apierrors "github.com/pribylovaa/go-news-trending/internal/transport/http/errors"
)

// Trending — GET /api/v1/trending?lat=..&lon=..&limit=..&radius_km=..
//
// lat и lon обязательны. limit опционален: отсутствие параметра даёт
// значение по умолчанию, явный ноль или отрицательное значение -> 400.
// radius_km опционален (0 -> радиус по умолчанию из конфига сервиса).
func (h *Handlers) Trending(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, ok := parseFloatParam(q.Get("lat"))
	if !ok {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}
	lon, ok := parseFloatParam(q.Get("lon"))
	if !ok {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	req := service.TrendingQuery{
		Latitude:  lat,
		Longitude: lon,
		Limit:     h.svc.DefaultLimit(),
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			apierrors.WriteError(w, r, errInvalidArgument())
			return
		}
		req.Limit = int32(n)
	}

	if v := q.Get("radius_km"); v != "" {
		radius, ok := parseFloatParam(v)
		if !ok {
			apierrors.WriteError(w, r, errInvalidArgument())
			return
		}
		req.RadiusKm = radius
	}

	items, err := h.svc.RetrieveTrending(r.Context(), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewFromRanked(items))
}

// parseFloatParam — обязательный float-параметр: пустая строка и мусор -> false.
func parseFloatParam(v string) (float64, bool) {
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
