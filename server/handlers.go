package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/esemashko/v2-service-time/clock"
	"github.com/esemashko/v2-service-time/middleware"
	"github.com/esemashko/v2-service-time/redis"
	"github.com/esemashko/v2-service-time/services/timeconv"
	"github.com/esemashko/v2-service-time/utils"
	"github.com/esemashko/v2-service-time/zoneinfo"

	"go.uber.org/zap"
)

const (
	serverTimeLayout    = "2006-01-02T15:04:05.000000-07:00"
	formattedTimeLayout = "2006-01-02 15:04:05"
	dateLayout          = "2006-01-02"
)

type handlers struct {
	clock     clock.Clock
	zones     *zoneinfo.Provider
	converter *timeconv.Service
	cache     ResponseCache
}

type rootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type timeResponse struct {
	ServerTime    string  `json:"server_time"`
	Timestamp     float64 `json:"timestamp"`
	FormattedTime string  `json:"formatted_time"`
}

type dateResponse struct {
	Date        string `json:"date"`
	Day         string `json:"day"`
	DayNumber   int    `json:"day_number"`
	Month       string `json:"month"`
	MonthNumber int    `json:"month_number"`
	Year        int    `json:"year"`
	ISODate     string `json:"iso_date"`
}

type timezoneEntry struct {
	utils.TimezoneInfo
	UTCOffset   string `json:"utc_offset"`
	CurrentTime string `json:"current_time"`
}

type timezonesResponse struct {
	Count     int             `json:"count"`
	Timezones []timezoneEntry `json:"timezones"`
}

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
	TZData string `json:"tzdata"`
	Cache  string `json:"cache"`
}

type errorResponse struct {
	Detail       string   `json:"detail"`
	Code         string   `json:"code"`
	KnownAliases []string `json:"known_aliases,omitempty"`
}

func (h *handlers) root(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSON(w, http.StatusOK, rootResponse{
		Message: utils.T(ctx, "api.title"),
		Version: Version,
		Endpoints: map[string]string{
			"/":             utils.T(ctx, "api.endpoint.root"),
			"/time":         utils.T(ctx, "api.endpoint.time"),
			"/date":         utils.T(ctx, "api.endpoint.date"),
			"/convert-time": utils.T(ctx, "api.endpoint.convert_time"),
			"/timezones":    utils.T(ctx, "api.endpoint.timezones"),
			"/health":       utils.T(ctx, "api.endpoint.health"),
		},
	})
}

func (h *handlers) serverTime(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	writeJSON(w, http.StatusOK, timeResponse{
		ServerTime:    now.Format(serverTimeLayout),
		Timestamp:     float64(now.UnixMicro()) / 1e6,
		FormattedTime: now.Format(formattedTimeLayout),
	})
}

func (h *handlers) serverDate(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	writeJSON(w, http.StatusOK, dateResponse{
		Date:        now.Format(dateLayout),
		Day:         now.Weekday().String(),
		DayNumber:   now.Day(),
		Month:       now.Month().String(),
		MonthNumber: int(now.Month()),
		Year:        now.Year(),
		ISODate:     now.Format(dateLayout),
	})
}

func (h *handlers) convertTime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	rawTime, rawZone := query.Get("time"), query.Get("timezone")

	// Время проверяется до обращения к кешу: ключ строится из разобранного значения
	tod, err := timeconv.ParseTimeOfDay(rawTime)
	if err != nil {
		h.writeConversionError(w, r, err)
		return
	}

	now := h.clock.Now()
	var cacheKey string
	if h.cache != nil {
		cacheKey = redis.ConversionKey(now, tod.String(), rawZone)
		data, err := h.cache.Get(ctx, cacheKey)
		if err == nil {
			writeRawJSON(w, http.StatusOK, data)
			return
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			utils.Logger.Debug("Conversion cache lookup failed", zap.Error(err))
		}
	}

	result, err := h.converter.Convert(ctx, rawTime, rawZone)
	if err != nil {
		h.writeConversionError(w, r, err)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		h.writeConversionError(w, r, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, cacheKey, data, redis.TTLUntilNextUTCDay(now)); err != nil {
			utils.Logger.Debug("Conversion cache store failed", zap.Error(err))
		}
	}

	writeRawJSON(w, http.StatusOK, data)
}

func (h *handlers) writeConversionError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var convErr *timeconv.Error
	if !errors.As(err, &convErr) {
		convErr = &timeconv.Error{Kind: timeconv.KindInternal, Err: err}
	}

	resp := errorResponse{Code: string(convErr.Kind)}
	switch convErr.Kind {
	case timeconv.KindInvalidInput:
		switch convErr.Reason {
		case timeconv.ReasonTimeOutOfRange:
			resp.Detail = utils.T(ctx, "error.time.out_of_range", utils.TemplateData{"Value": convErr.Input})
		case timeconv.ReasonTimezoneRequired:
			resp.Detail = utils.T(ctx, "error.timezone.required")
		default:
			resp.Detail = utils.T(ctx, "error.time.invalid_format", utils.TemplateData{"Value": convErr.Input})
		}
	case timeconv.KindUnknownTimezone:
		resp.Detail = utils.T(ctx, "error.timezone.unknown", utils.TemplateData{
			"Value":   convErr.Input,
			"Aliases": strings.Join(convErr.KnownAliases, ", "),
		})
		resp.KnownAliases = convErr.KnownAliases
	case timeconv.KindTimezoneDatabaseUnavailable:
		resp.Detail = utils.T(ctx, "error.timezone.database_unavailable")
	default:
		resp.Detail = utils.T(ctx, "error.internal")
	}

	status := convErr.Kind.HTTPStatus()
	fields := []zap.Field{
		zap.String("request_id", middleware.GetRequestID(ctx)),
		zap.String("code", resp.Code),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		utils.Logger.Error("Time conversion failed", fields...)
	} else {
		utils.Logger.Debug("Time conversion rejected", fields...)
	}

	writeJSON(w, status, resp)
}

func (h *handlers) timezones(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	catalog := utils.GetAvailableTimezones()

	entries := make([]timezoneEntry, 0, len(catalog))
	for _, info := range catalog {
		loc, err := h.zones.Load(info.ID)
		if err != nil {
			if errors.Is(err, zoneinfo.ErrDatabaseUnavailable) {
				h.writeConversionError(w, r, &timeconv.Error{Kind: timeconv.KindTimezoneDatabaseUnavailable, Err: err})
				return
			}
			utils.Logger.Warn("Catalog timezone cannot be loaded",
				zap.String("timezone", info.ID),
				zap.Error(err),
			)
			continue
		}
		local := now.In(loc)
		entries = append(entries, timezoneEntry{
			TimezoneInfo: info,
			UTCOffset:    utils.FormatUTCOffset(local),
			CurrentTime:  local.Format(formattedTimeLayout),
		})
	}

	writeJSON(w, http.StatusOK, timezonesResponse{Count: len(entries), Timezones: entries})
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		Time:   h.clock.Now().UTC().Format(serverTimeLayout),
		TZData: "available",
		Cache:  "disabled",
	}
	if h.cache != nil {
		resp.Cache = "enabled"
	}

	status := http.StatusOK
	if err := h.zones.Available(); err != nil {
		resp.Status = "degraded"
		resp.TZData = "unavailable"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Not Found", Code: "not_found"})
}

func (h *handlers) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "Method Not Allowed", Code: "method_not_allowed"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		utils.Logger.Error("Failed to encode response", zap.Error(err))
		http.Error(w, `{"detail":"Internal server error","code":"internal_error"}`, http.StatusInternalServerError)
		return
	}
	writeRawJSON(w, status, data)
}

func writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
