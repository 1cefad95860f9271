package tms

import "context"

// ScheduleUpdate reports which parts of the remote schedule the TMS actually
// touched. The TMS recalculates downstream delivery dates on its own, so the
// two flags can differ.
type ScheduleUpdate struct {
	ScheduledDepartureUpdated bool
	DeliveryDatesUpdated      bool
}

// Gateway is the narrow outbound contract toward the external TMS. The two
// operations fail independently; callers must treat any returned error as a
// reportable, non-fatal condition.
type Gateway interface {
	UpdateScheduledDeparture(ctx context.Context, tripID int64, departDate, departTime string) (ScheduleUpdate, error)
	AppendDelayNote(ctx context.Context, tripID int64, note string) error
}
