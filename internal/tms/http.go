package tms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPGateway talks to the TMS disposition API over JSON. Timeouts and
// non-2xx responses surface as plain errors; the engine decides what is
// fatal.
type HTTPGateway struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type scheduleRequest struct {
	DepartDate string `json:"depart_date"`
	DepartTime string `json:"depart_time"`
}

type scheduleResponse struct {
	ScheduledDepartureUpdated bool `json:"scheduled_departure_updated"`
	DeliveryDatesUpdated      bool `json:"delivery_dates_updated"`
}

type delayNoteRequest struct {
	Note string `json:"note"`
}

func (g HTTPGateway) UpdateScheduledDeparture(ctx context.Context, tripID int64, departDate, departTime string) (ScheduleUpdate, error) {
	body := scheduleRequest{DepartDate: departDate, DepartTime: departTime}
	var resp scheduleResponse
	url := fmt.Sprintf("%s/v1/trips/%d/scheduled-departure", g.BaseURL, tripID)
	if err := g.do(ctx, http.MethodPut, url, body, &resp); err != nil {
		return ScheduleUpdate{}, err
	}
	return ScheduleUpdate{
		ScheduledDepartureUpdated: resp.ScheduledDepartureUpdated,
		DeliveryDatesUpdated:      resp.DeliveryDatesUpdated,
	}, nil
}

func (g HTTPGateway) AppendDelayNote(ctx context.Context, tripID int64, note string) error {
	url := fmt.Sprintf("%s/v1/trips/%d/delay-notes", g.BaseURL, tripID)
	return g.do(ctx, http.MethodPost, url, delayNoteRequest{Note: note}, nil)
}

func (g HTTPGateway) do(ctx context.Context, method, url string, payload any, out any) error {
	client := g.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.APIKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("tms http error: %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tms response decode: %w", err)
	}
	return nil
}
