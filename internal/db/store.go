package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ltl-driver-management/backend/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

const tripColumns = `id, route_id, origin_terminal, destination_terminal, status,
	scheduled_depart_date, scheduled_depart_time, actual_depart_date, actual_depart_time, created_at`

func scanTrip(row pgx.Row) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID, &t.RouteID, &t.OriginTerminal, &t.DestinationTerminal, &t.Status,
		&t.ScheduledDepartDate, &t.ScheduledDepartTime, &t.ActualDepartDate, &t.ActualDepartTime, &t.CreatedAt,
	)
	return t, err
}

func (s *Store) GetTrip(ctx context.Context, tripID int64) (models.Trip, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, tripID)
	return scanTrip(row)
}

func (s *Store) GetTripForLoadsheet(ctx context.Context, loadsheetID int64) (models.Trip, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT t.id, t.route_id, t.origin_terminal, t.destination_terminal, t.status,
			t.scheduled_depart_date, t.scheduled_depart_time, t.actual_depart_date, t.actual_depart_time, t.created_at
		FROM trips t
		JOIN loadsheets l ON l.trip_id = t.id
		WHERE l.id = $1
	`, loadsheetID)
	return scanTrip(row)
}

func (s *Store) ListTrips(ctx context.Context, status, origin string, limit, offset int) ([]models.Trip, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + tripColumns + ` FROM trips`
	var args []any
	var wheres []string
	if status != "" {
		args = append(args, status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if origin != "" {
		args = append(args, origin)
		wheres = append(wheres, fmt.Sprintf("origin_terminal = $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY scheduled_depart_date DESC, scheduled_depart_time DESC LIMIT $" +
		fmt.Sprint(len(args)+1) + " OFFSET $" + fmt.Sprint(len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTerminalByCode(ctx context.Context, code string) (models.Terminal, error) {
	var t models.Terminal
	err := s.Pool.QueryRow(ctx, `
		SELECT id, code, name, city, state FROM terminals WHERE code = $1
	`, strings.ToUpper(strings.TrimSpace(code))).Scan(&t.ID, &t.Code, &t.Name, &t.City, &t.State)
	return t, err
}

func (s *Store) ListTerminals(ctx context.Context) ([]models.Terminal, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, code, name, city, state FROM terminals ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Terminal
	for rows.Next() {
		var t models.Terminal
		if err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.City, &t.State); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) UpdateScheduledDeparture(ctx context.Context, tripID int64, departDate, departTime string) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE trips SET scheduled_depart_date = $1, scheduled_depart_time = $2 WHERE id = $3
	`, departDate, departTime, tripID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trip %d not found", tripID)
	}
	return nil
}

func (s *Store) UpdateActualDeparture(ctx context.Context, tripID int64, departDate, departTime string) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE trips SET actual_depart_date = $1, actual_depart_time = $2 WHERE id = $3
	`, departDate, departTime, tripID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trip %d not found", tripID)
	}
	return nil
}

// UpsertLateDepartureReason keeps at most one live record per trip. A second
// submission replaces every field except the original audit columns.
func (s *Store) UpsertLateDepartureReason(ctx context.Context, rec models.LateDepartureReason) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO late_departure_reasons
			(trip_id, reason, will_cause_service_failure, accountable_terminal_id,
			scheduled_depart_time, actual_depart_time, minutes_late, notes, created_at, creator)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (trip_id) DO UPDATE SET
			reason = EXCLUDED.reason,
			will_cause_service_failure = EXCLUDED.will_cause_service_failure,
			accountable_terminal_id = EXCLUDED.accountable_terminal_id,
			scheduled_depart_time = EXCLUDED.scheduled_depart_time,
			actual_depart_time = EXCLUDED.actual_depart_time,
			minutes_late = EXCLUDED.minutes_late,
			notes = EXCLUDED.notes
	`, rec.TripID, rec.Reason, rec.WillCauseServiceFailure, rec.AccountableTerminalID,
		rec.ScheduledDepartTime, rec.ActualDepartTime, rec.MinutesLate, rec.Notes,
		rec.CreatedAt, rec.Creator)
	return err
}

func (s *Store) GetLateDepartureReason(ctx context.Context, tripID int64) (models.LateDepartureReason, error) {
	var rec models.LateDepartureReason
	err := s.Pool.QueryRow(ctx, `
		SELECT trip_id, reason, will_cause_service_failure, accountable_terminal_id,
			scheduled_depart_time, actual_depart_time, minutes_late, notes, created_at, creator
		FROM late_departure_reasons WHERE trip_id = $1
	`, tripID).Scan(
		&rec.TripID, &rec.Reason, &rec.WillCauseServiceFailure, &rec.AccountableTerminalID,
		&rec.ScheduledDepartTime, &rec.ActualDepartTime, &rec.MinutesLate, &rec.Notes,
		&rec.CreatedAt, &rec.Creator,
	)
	return rec, err
}
