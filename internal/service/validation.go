package service

import (
	"strings"

	"github.com/ltl-driver-management/backend/internal/models"
)

// CorrectionIntent selects what a disposition submission changes. Exactly one
// intent is active per submission.
type CorrectionIntent string

const (
	// IntentNone records a late-departure reason without correcting times.
	IntentNone CorrectionIntent = "NONE"
	// IntentScheduleCorrection fixes a wrong scheduled departure.
	IntentScheduleCorrection CorrectionIntent = "SCHEDULE_CORRECTION"
	// IntentDispatchCorrection fixes a wrongly recorded actual departure.
	IntentDispatchCorrection CorrectionIntent = "DISPATCH_CORRECTION"
)

func (i CorrectionIntent) Valid() bool {
	switch i {
	case IntentNone, IntentScheduleCorrection, IntentDispatchCorrection:
		return true
	}
	return false
}

type Field string

const (
	FieldReason              Field = "reason"
	FieldServiceFailure      Field = "will_cause_service_failure"
	FieldAccountableTerminal Field = "accountable_terminal"
	FieldCorrectedDate       Field = "corrected_date"
	FieldCorrectedTime       Field = "corrected_time"
)

// DispositionFields carries everything a submission may supply. It is
// transient input, never persisted as-is.
type DispositionFields struct {
	Reason                  models.LateReason
	WillCauseServiceFailure *bool
	AccountableTerminalID   *int64
	AccountableTerminalCode string
	Notes                   string
	NewScheduledDepartDate  string
	NewScheduledDepartTime  string
	ScheduledDepartTime     string
	ActualDepartTime        string
	MinutesLate             *int
	CorrectedDate           string
	CorrectedTime           string
	Creator                 string
}

// SetServiceFailure records the service-failure flag. Flipping the flag from
// true to false clears any previously chosen accountable terminal so a stale
// selection cannot survive into the persisted record.
func (f *DispositionFields) SetServiceFailure(v bool) {
	if f.WillCauseServiceFailure != nil && *f.WillCauseServiceFailure && !v {
		f.AccountableTerminalID = nil
		f.AccountableTerminalCode = ""
	}
	f.WillCauseServiceFailure = &v
}

func (f DispositionFields) hasAccountableTerminal() bool {
	return f.AccountableTerminalID != nil || strings.TrimSpace(f.AccountableTerminalCode) != ""
}

// RequiredFields lists what the given intent demands, taking the current
// field values into account: the accountable terminal becomes mandatory only
// when the delay is flagged as causing a service failure.
func RequiredFields(intent CorrectionIntent, f DispositionFields) []Field {
	switch intent {
	case IntentScheduleCorrection, IntentDispatchCorrection:
		return []Field{FieldCorrectedDate, FieldCorrectedTime}
	default:
		required := []Field{FieldReason, FieldServiceFailure}
		if f.WillCauseServiceFailure != nil && *f.WillCauseServiceFailure {
			required = append(required, FieldAccountableTerminal)
		}
		return required
	}
}

// MissingFields returns the required fields the submission has not supplied,
// in a stable order.
func MissingFields(intent CorrectionIntent, f DispositionFields) []Field {
	var missing []Field
	for _, field := range RequiredFields(intent, f) {
		switch field {
		case FieldReason:
			if !f.Reason.Valid() {
				missing = append(missing, field)
			}
		case FieldServiceFailure:
			if f.WillCauseServiceFailure == nil {
				missing = append(missing, field)
			}
		case FieldAccountableTerminal:
			if !f.hasAccountableTerminal() {
				missing = append(missing, field)
			}
		case FieldCorrectedDate:
			if strings.TrimSpace(f.CorrectedDate) == "" {
				missing = append(missing, field)
			}
		case FieldCorrectedTime:
			if strings.TrimSpace(f.CorrectedTime) == "" {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

func CanSubmit(intent CorrectionIntent, f DispositionFields) bool {
	return len(MissingFields(intent, f)) == 0
}
