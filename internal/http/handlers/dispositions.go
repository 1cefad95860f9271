package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ltl-driver-management/backend/internal/models"
	"github.com/ltl-driver-management/backend/internal/service"
)

// DispositionRequest mirrors the disposition form. Intent defaults to NONE;
// field requirements vary with intent and are enforced by the service
// validator, not by struct tags.
type DispositionRequest struct {
	Intent                  string `json:"intent" validate:"omitempty,oneof=NONE SCHEDULE_CORRECTION DISPATCH_CORRECTION"`
	LateReason              string `json:"late_reason"`
	WillCauseServiceFailure *bool  `json:"will_cause_service_failure"`
	AccountableTerminalID   *int64 `json:"accountable_terminal_id"`
	AccountableTerminalCode string `json:"accountable_terminal_code"`
	Notes                   string `json:"notes"`
	NewScheduledDepartDate  string `json:"new_scheduled_depart_date"`
	NewScheduledDepartTime  string `json:"new_scheduled_depart_time"`
	ScheduledDepartTime     string `json:"scheduled_depart_time"`
	ActualDepartTime        string `json:"actual_depart_time"`
	MinutesLate             *int   `json:"minutes_late"`
	CorrectedDate           string `json:"corrected_date"`
	CorrectedTime           string `json:"corrected_time"`
	Creator                 string `json:"creator"`
}

type BulkDispositionRequest struct {
	LoadsheetIDs []int64 `json:"loadsheet_ids" validate:"required,min=1"`
	DispositionRequest
}

func (r DispositionRequest) intent() service.CorrectionIntent {
	if r.Intent == "" {
		return service.IntentNone
	}
	return service.CorrectionIntent(r.Intent)
}

// fields maps the request onto engine input. The service-failure flag goes
// through the reducer so a true-to-false flip drops a stale terminal before
// anything is persisted.
func (r DispositionRequest) fields() service.DispositionFields {
	f := service.DispositionFields{
		Reason:                  models.LateReason(r.LateReason),
		AccountableTerminalID:   r.AccountableTerminalID,
		AccountableTerminalCode: r.AccountableTerminalCode,
		Notes:                   r.Notes,
		NewScheduledDepartDate:  r.NewScheduledDepartDate,
		NewScheduledDepartTime:  r.NewScheduledDepartTime,
		ScheduledDepartTime:     r.ScheduledDepartTime,
		ActualDepartTime:        r.ActualDepartTime,
		MinutesLate:             r.MinutesLate,
		CorrectedDate:           r.CorrectedDate,
		CorrectedTime:           r.CorrectedTime,
		Creator:                 r.Creator,
	}
	if r.WillCauseServiceFailure != nil {
		f.SetServiceFailure(*r.WillCauseServiceFailure)
	}
	return f
}

// @Summary Dispose a single trip
// @Description Apply a schedule/dispatch correction or record a late-departure reason, then reconcile with the TMS
// @Tags dispositions
// @Accept json
// @Produce json
// @Param id path int true "Trip ID"
// @Param request body DispositionRequest true "Disposition"
// @Success 200 {object} models.DispositionResult
// @Failure 400 {object} map[string]any
// @Router /api/trips/{id}/disposition [post]
func (h *Handler) DisposeTrip(c *gin.Context) {
	tripID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid trip id", nil)
		return
	}

	var req DispositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	result, err := h.Dispo.DisposeOne(c.Request.Context(), tripID, req.intent(), req.fields())
	if err != nil {
		var verr service.ValidationError
		if errors.As(err, &verr) {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(), verr.Missing)
			return
		}
		h.Logger.Error().Err(err).Int64("trip_id", tripID).Msg("disposition failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Disposition failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Dispose loadsheets in bulk
// @Description Apply one late-departure reason across loadsheets; items are isolated and results keep input order
// @Tags dispositions
// @Accept json
// @Produce json
// @Param request body BulkDispositionRequest true "Bulk disposition"
// @Success 200 {object} models.BulkDispositionReport
// @Failure 400 {object} map[string]any
// @Router /api/loadsheets/disposition [post]
func (h *Handler) DisposeLoadsheets(c *gin.Context) {
	var req BulkDispositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	fields := req.fields()
	if missing := service.MissingFields(service.IntentNone, fields); len(missing) > 0 {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", service.ValidationError{Missing: missing}.Error(), missing)
		return
	}

	report := h.Dispo.DisposeMany(c.Request.Context(), req.LoadsheetIDs, fields)
	c.JSON(http.StatusOK, report)
}
