package service

import (
	"testing"

	"github.com/ltl-driver-management/backend/internal/models"
)

func boolPtr(v bool) *bool    { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestCanSubmitRequiresTerminalOnServiceFailure(t *testing.T) {
	f := DispositionFields{
		Reason:                  models.ReasonDockIssue,
		WillCauseServiceFailure: boolPtr(true),
	}
	if CanSubmit(IntentNone, f) {
		t.Fatal("expected not submittable without accountable terminal")
	}

	f.AccountableTerminalID = int64Ptr(7)
	if !CanSubmit(IntentNone, f) {
		t.Fatal("expected submittable with accountable terminal")
	}
}

func TestCanSubmitIndependentOfTerminalWhenNoServiceFailure(t *testing.T) {
	f := DispositionFields{
		Reason:                  models.ReasonStaffing,
		WillCauseServiceFailure: boolPtr(false),
	}
	if !CanSubmit(IntentNone, f) {
		t.Fatal("expected submittable without terminal when no service failure")
	}

	f.AccountableTerminalID = int64Ptr(3)
	if !CanSubmit(IntentNone, f) {
		t.Fatal("expected submittable with optional terminal")
	}
}

func TestCanSubmitNoneRequiresReasonAndFlag(t *testing.T) {
	if CanSubmit(IntentNone, DispositionFields{}) {
		t.Fatal("expected empty submission rejected")
	}
	if CanSubmit(IntentNone, DispositionFields{Reason: "NOT_A_REASON", WillCauseServiceFailure: boolPtr(false)}) {
		t.Fatal("expected unknown reason rejected")
	}
	if CanSubmit(IntentNone, DispositionFields{Reason: models.ReasonWeather}) {
		t.Fatal("expected missing service-failure flag rejected")
	}
}

func TestCanSubmitCorrections(t *testing.T) {
	for _, intent := range []CorrectionIntent{IntentScheduleCorrection, IntentDispatchCorrection} {
		if CanSubmit(intent, DispositionFields{}) {
			t.Fatalf("%s: expected date and time required", intent)
		}
		f := DispositionFields{CorrectedDate: "2026-03-02", CorrectedTime: "09:30"}
		if !CanSubmit(intent, f) {
			t.Fatalf("%s: expected submittable with date and time, no reason needed", intent)
		}
	}
}

func TestRequiredFieldsGrowWithServiceFailure(t *testing.T) {
	base := RequiredFields(IntentNone, DispositionFields{})
	if len(base) != 2 {
		t.Fatalf("expected reason and flag required, got %v", base)
	}

	withFailure := RequiredFields(IntentNone, DispositionFields{WillCauseServiceFailure: boolPtr(true)})
	found := false
	for _, f := range withFailure {
		if f == FieldAccountableTerminal {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected accountable terminal required, got %v", withFailure)
	}
}

func TestSetServiceFailureClearsStaleTerminal(t *testing.T) {
	f := DispositionFields{}
	f.AccountableTerminalID = int64Ptr(7)
	f.AccountableTerminalCode = "ATL"
	f.SetServiceFailure(true)
	f.SetServiceFailure(false)

	if f.AccountableTerminalID != nil || f.AccountableTerminalCode != "" {
		t.Fatalf("expected terminal cleared on true->false flip, got %+v", f)
	}
	if f.WillCauseServiceFailure == nil || *f.WillCauseServiceFailure {
		t.Fatal("expected flag recorded as false")
	}
}

func TestSetServiceFailureKeepsTerminalOtherwise(t *testing.T) {
	f := DispositionFields{AccountableTerminalID: int64Ptr(4)}
	f.SetServiceFailure(false)
	if f.AccountableTerminalID == nil {
		t.Fatal("expected terminal kept on initial false set")
	}

	f = DispositionFields{AccountableTerminalID: int64Ptr(4)}
	f.SetServiceFailure(true)
	f.SetServiceFailure(true)
	if f.AccountableTerminalID == nil {
		t.Fatal("expected terminal kept while flag stays true")
	}
}
