package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ltl-driver-management/backend/internal/models"
	"github.com/ltl-driver-management/backend/internal/tms"
)

// Store is what the disposition engine needs from persistence.
type Store interface {
	GetTripForLoadsheet(ctx context.Context, loadsheetID int64) (models.Trip, error)
	GetTerminalByCode(ctx context.Context, code string) (models.Terminal, error)
	UpdateScheduledDeparture(ctx context.Context, tripID int64, departDate, departTime string) error
	UpdateActualDeparture(ctx context.Context, tripID int64, departDate, departTime string) error
	UpsertLateDepartureReason(ctx context.Context, rec models.LateDepartureReason) error
}

// DispositionService decides and applies late-departure corrections, then
// reconciles recorded reasons with the external TMS.
type DispositionService struct {
	Store   Store
	Gateway tms.Gateway
	Logger  zerolog.Logger
}

// DisposeOne runs a single-trip disposition. Validation and local persistence
// failures return an error and nothing is reconciled. TMS failures never
// fail the call: the local record stays persisted and the failure is appended
// to the result's Errors.
func (s *DispositionService) DisposeOne(ctx context.Context, tripID int64, intent CorrectionIntent, fields DispositionFields) (models.DispositionResult, error) {
	result := models.DispositionResult{TripID: tripID, Errors: []string{}}

	if missing := MissingFields(intent, fields); len(missing) > 0 {
		return result, ValidationError{Missing: missing}
	}

	switch intent {
	case IntentScheduleCorrection:
		if err := s.Store.UpdateScheduledDeparture(ctx, tripID, fields.CorrectedDate, fields.CorrectedTime); err != nil {
			return result, PersistenceError{Op: "update scheduled departure", Err: err}
		}
		result.ScheduledDepartureUpdated = true
		return result, nil

	case IntentDispatchCorrection:
		if err := s.Store.UpdateActualDeparture(ctx, tripID, fields.CorrectedDate, fields.CorrectedTime); err != nil {
			return result, PersistenceError{Op: "update actual departure", Err: err}
		}
		return result, nil
	}

	rec, err := s.buildLateReason(ctx, tripID, fields)
	if err != nil {
		return result, err
	}
	if err := s.Store.UpsertLateDepartureReason(ctx, rec); err != nil {
		return result, PersistenceError{Op: "upsert late departure reason", Err: err}
	}
	result.LateReasonCreated = true

	outcome := s.reconcile(ctx, tripID, fields, rec)
	result.ScheduledDepartureUpdated = outcome.scheduledDepartureUpdated
	result.DeliveryDatesUpdated = outcome.deliveryDatesUpdated
	result.DelayNotesAdded = outcome.delayNotesAdded
	result.Errors = append(result.Errors, outcome.errors...)
	return result, nil
}

// DisposeMany applies one disposition uniformly across loadsheets. Items are
// isolated: a failing loadsheet is reported in its own result and never
// aborts the rest. Results keep input order, and once started the batch runs
// every item to completion.
func (s *DispositionService) DisposeMany(ctx context.Context, loadsheetIDs []int64, fields DispositionFields) models.BulkDispositionReport {
	report := models.BulkDispositionReport{Results: make([]models.DispositionResult, 0, len(loadsheetIDs))}
	for _, loadsheetID := range loadsheetIDs {
		res := s.disposeLoadsheet(ctx, loadsheetID, fields)
		if len(res.Errors) == 0 {
			report.Processed++
		} else {
			report.Failed++
			s.Logger.Warn().
				Int64("loadsheet_id", loadsheetID).
				Strs("errors", res.Errors).
				Msg("loadsheet disposition incomplete")
		}
		report.Results = append(report.Results, res)
	}
	report.Success = report.Failed == 0
	return report
}

func (s *DispositionService) disposeLoadsheet(ctx context.Context, loadsheetID int64, fields DispositionFields) models.DispositionResult {
	trip, err := s.Store.GetTripForLoadsheet(ctx, loadsheetID)
	if err != nil {
		return models.DispositionResult{
			LoadsheetID: loadsheetID,
			Errors:      []string{fmt.Sprintf("resolve loadsheet %d: %v", loadsheetID, err)},
		}
	}

	res, err := s.DisposeOne(ctx, trip.ID, IntentNone, fields)
	res.LoadsheetID = loadsheetID
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
	}
	return res
}

func (s *DispositionService) buildLateReason(ctx context.Context, tripID int64, f DispositionFields) (models.LateDepartureReason, error) {
	rec := models.LateDepartureReason{
		TripID:                  tripID,
		Reason:                  f.Reason,
		WillCauseServiceFailure: f.WillCauseServiceFailure != nil && *f.WillCauseServiceFailure,
		AccountableTerminalID:   f.AccountableTerminalID,
		CreatedAt:               time.Now().UTC(),
		Creator:                 f.Creator,
	}
	if rec.Creator == "" {
		rec.Creator = "system"
	}

	if rec.AccountableTerminalID == nil && strings.TrimSpace(f.AccountableTerminalCode) != "" {
		terminal, err := s.Store.GetTerminalByCode(ctx, f.AccountableTerminalCode)
		if err != nil {
			return rec, PersistenceError{Op: "resolve accountable terminal " + f.AccountableTerminalCode, Err: err}
		}
		rec.AccountableTerminalID = &terminal.ID
	}

	if f.ScheduledDepartTime != "" {
		v := f.ScheduledDepartTime
		rec.ScheduledDepartTime = &v
	}
	if f.ActualDepartTime != "" {
		v := f.ActualDepartTime
		rec.ActualDepartTime = &v
	}
	if f.Notes != "" {
		v := f.Notes
		rec.Notes = &v
	}

	if f.MinutesLate != nil {
		rec.MinutesLate = f.MinutesLate
	} else if minutes, ok := ComputeMinutesLate(f.ScheduledDepartTime, f.ActualDepartTime); ok {
		rec.MinutesLate = &minutes
	}
	return rec, nil
}

type reconcileOutcome struct {
	scheduledDepartureUpdated bool
	deliveryDatesUpdated      bool
	delayNotesAdded           bool
	errors                    []string
}

// reconcile pushes the recorded decision to the TMS. The two gateway calls
// are independent; every failure is caught, reported, and never raised.
func (s *DispositionService) reconcile(ctx context.Context, tripID int64, f DispositionFields, rec models.LateDepartureReason) reconcileOutcome {
	var out reconcileOutcome

	if strings.TrimSpace(f.NewScheduledDepartDate) != "" {
		departTime := f.NewScheduledDepartTime
		if departTime == "" {
			departTime = f.ScheduledDepartTime
		}
		update, err := s.Gateway.UpdateScheduledDeparture(ctx, tripID, f.NewScheduledDepartDate, departTime)
		if err != nil {
			out.errors = append(out.errors, fmt.Sprintf("tms: update scheduled departure: %v", err))
			s.Logger.Warn().Err(err).Int64("trip_id", tripID).Msg("tms schedule push failed")
		} else {
			out.scheduledDepartureUpdated = update.ScheduledDepartureUpdated
			out.deliveryDatesUpdated = update.DeliveryDatesUpdated
		}
	}

	note := BuildDelayNote(rec, f.AccountableTerminalCode)
	if err := s.Gateway.AppendDelayNote(ctx, tripID, note); err != nil {
		out.errors = append(out.errors, fmt.Sprintf("tms: append delay note: %v", err))
		s.Logger.Warn().Err(err).Int64("trip_id", tripID).Msg("tms delay note failed")
	} else {
		out.delayNotesAdded = true
	}
	return out
}

// BuildDelayNote renders the note text pushed to the TMS alongside the
// schedule update.
func BuildDelayNote(rec models.LateDepartureReason, terminalCode string) string {
	parts := []string{"Late departure: " + string(rec.Reason)}
	if rec.MinutesLate != nil {
		parts = append(parts, fmt.Sprintf("%d min late", *rec.MinutesLate))
	}
	if rec.WillCauseServiceFailure {
		parts = append(parts, "service failure expected")
	}
	if terminalCode != "" {
		parts = append(parts, "accountable terminal "+terminalCode)
	} else if rec.AccountableTerminalID != nil {
		parts = append(parts, fmt.Sprintf("accountable terminal #%d", *rec.AccountableTerminalID))
	}
	if rec.Notes != nil && *rec.Notes != "" {
		parts = append(parts, *rec.Notes)
	}
	return strings.Join(parts, "; ")
}
