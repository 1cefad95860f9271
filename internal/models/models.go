package models

import "time"

// LateReason classifies why an outbound trip left the dock late.
type LateReason string

const (
	ReasonPreLoad       LateReason = "PRE_LOAD"
	ReasonDockIssue     LateReason = "DOCK_ISSUE"
	ReasonStaffing      LateReason = "STAFFING"
	ReasonDriverIssue   LateReason = "DRIVER_ISSUE"
	ReasonWeather       LateReason = "WEATHER"
	ReasonLateInbound   LateReason = "LATE_INBOUND"
	ReasonDispatchIssue LateReason = "DISPATCH_ISSUE"
)

func (r LateReason) Valid() bool {
	switch r {
	case ReasonPreLoad, ReasonDockIssue, ReasonStaffing, ReasonDriverIssue,
		ReasonWeather, ReasonLateInbound, ReasonDispatchIssue:
		return true
	}
	return false
}

type Terminal struct {
	ID    int64  `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

type Trip struct {
	ID                  int64     `json:"id"`
	RouteID             int64     `json:"route_id"`
	OriginTerminal      string    `json:"origin_terminal"`
	DestinationTerminal string    `json:"destination_terminal"`
	Status              string    `json:"status"`
	ScheduledDepartDate string    `json:"scheduled_depart_date"`
	ScheduledDepartTime string    `json:"scheduled_depart_time"`
	ActualDepartDate    *string   `json:"actual_depart_date"`
	ActualDepartTime    *string   `json:"actual_depart_time"`
	CreatedAt           time.Time `json:"created_at"`
}

type Loadsheet struct {
	ID        int64  `json:"id"`
	TripID    int64  `json:"trip_id"`
	ProNumber string `json:"pro_number"`
}

// LateDepartureReason is the durable disposition record. At most one live
// record exists per trip; resubmission replaces the prior record. CreatedAt
// and Creator are immutable after the first write.
type LateDepartureReason struct {
	TripID                  int64      `json:"trip_id"`
	Reason                  LateReason `json:"reason"`
	WillCauseServiceFailure bool       `json:"will_cause_service_failure"`
	AccountableTerminalID   *int64     `json:"accountable_terminal_id"`
	ScheduledDepartTime     *string    `json:"scheduled_depart_time"`
	ActualDepartTime        *string    `json:"actual_depart_time"`
	MinutesLate             *int       `json:"minutes_late"`
	Notes                   *string    `json:"notes"`
	CreatedAt               time.Time  `json:"created_at"`
	Creator                 string     `json:"creator"`
}

// DispositionResult reports the outcome of a single disposition. The four
// flags are independent and must not be collapsed: a caller that sees
// LateReasonCreated true alongside a non-empty Errors list holds a durable
// local record that the TMS does not yet reflect.
type DispositionResult struct {
	TripID                    int64    `json:"trip_id"`
	LoadsheetID               int64    `json:"loadsheet_id,omitempty"`
	LateReasonCreated         bool     `json:"late_reason_created"`
	ScheduledDepartureUpdated bool     `json:"scheduled_departure_updated"`
	DeliveryDatesUpdated      bool     `json:"delivery_dates_updated"`
	DelayNotesAdded           bool     `json:"delay_notes_added"`
	Errors                    []string `json:"errors"`
}

type BulkDispositionReport struct {
	Success   bool                `json:"success"`
	Processed int                 `json:"processed"`
	Failed    int                 `json:"failed"`
	Results   []DispositionResult `json:"results"`
}
