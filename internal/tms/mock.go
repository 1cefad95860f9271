package tms

import "context"

// MockGateway accepts every call. Used when TMS_URL is not configured so the
// disposition workflow can run against a local database only.
type MockGateway struct{}

func (MockGateway) UpdateScheduledDeparture(ctx context.Context, tripID int64, departDate, departTime string) (ScheduleUpdate, error) {
	return ScheduleUpdate{ScheduledDepartureUpdated: true, DeliveryDatesUpdated: true}, nil
}

func (MockGateway) AppendDelayNote(ctx context.Context, tripID int64, note string) error {
	return nil
}
