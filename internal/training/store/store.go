package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/database"
	"github.com/taka-daredemo/JICA/internal/training"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTrainingColumns = `
	t.id, t.topic, t.description, t.date, t.location, t.facilitator_id,
	COALESCE(u.name, ''), COALESCE(u.email, ''), t.capacity, t.status,
	(SELECT COUNT(*) FROM training_attendance a WHERE a.session_id = t.id),
	(SELECT COUNT(*) FROM training_attendance a WHERE a.session_id = t.id AND a.status = 'Present'),
	t.created_at, t.updated_at
`

const fromTrainings = `
	FROM trainings t
	LEFT JOIN users u ON t.facilitator_id = u.id
`

func scanTraining(s scanner) (*training.Training, error) {
	var t training.Training

	var statusStr string

	if err := s.Scan(
		&t.ID, &t.Topic, &t.Description, &t.Date, &t.Location, &t.FacilitatorID,
		&t.FacilitatorName, &t.FacilitatorEmail, &t.Capacity, &statusStr,
		&t.RegisteredCount, &t.PresentCount,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Status = training.Status(statusStr)

	return &t, nil
}

func (s *Store) CreateTraining(ctx context.Context, t *training.Training) error {
	query := `
		INSERT INTO trainings (topic, description, date, location, facilitator_id, capacity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.Topic,
		t.Description,
		t.Date,
		t.Location,
		t.FacilitatorID,
		t.Capacity,
		t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating training: %w", err)
	}

	return nil
}

func (s *Store) GetTraining(ctx context.Context, id uuid.UUID) (*training.Training, error) {
	query := `SELECT ` + selectTrainingColumns + fromTrainings + ` WHERE t.id = $1`

	t, err := scanTraining(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, training.ErrNotFound
		}

		return nil, fmt.Errorf("getting training: %w", err)
	}

	return t, nil
}

func (s *Store) ListTrainings(ctx context.Context, filter training.ListFilter) ([]*training.Training, error) {
	query := `SELECT ` + selectTrainingColumns + fromTrainings + ` WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND t.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	query += " ORDER BY t.date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing trainings: %w", err)
	}
	defer rows.Close()

	var trainings []*training.Training

	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning training: %w", err)
		}

		trainings = append(trainings, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating training rows: %w", err)
	}

	return trainings, nil
}

func (s *Store) ListAttendance(ctx context.Context, sessionID uuid.UUID) ([]*training.Attendance, error) {
	query := `
		SELECT a.session_id, a.farmer_id, f.farmer_code, f.name, a.status, a.created_at
		FROM training_attendance a
		JOIN farmers f ON a.farmer_id = f.id
		WHERE a.session_id = $1
		ORDER BY f.farmer_code ASC
	`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing attendance: %w", err)
	}
	defer rows.Close()

	var out []*training.Attendance

	for rows.Next() {
		var a training.Attendance

		var statusStr string

		if err := rows.Scan(&a.SessionID, &a.FarmerID, &a.FarmerCode, &a.FarmerName, &statusStr, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning attendance: %w", err)
		}

		a.Status = training.AttendanceStatus(statusStr)
		out = append(out, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attendance rows: %w", err)
	}

	return out, nil
}

func (s *Store) FarmerExists(ctx context.Context, farmerID uuid.UUID) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM farmers WHERE id = $1)`, farmerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking farmer: %w", err)
	}

	return exists, nil
}

// CreateAttendance registers a farmer while holding the session row lock, so
// concurrent registrations cannot overbook a session.
func (s *Store) CreateAttendance(ctx context.Context, a *training.Attendance) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var capacity sql.NullInt64
	if err := dbTx.QueryRowContext(ctx, `SELECT capacity FROM trainings WHERE id = $1 FOR UPDATE`, a.SessionID).Scan(&capacity); err != nil {
		if err == sql.ErrNoRows {
			return training.ErrNotFound
		}

		return fmt.Errorf("locking training: %w", err)
	}

	if capacity.Valid {
		var registered int64
		if err := dbTx.QueryRowContext(ctx, `SELECT COUNT(*) FROM training_attendance WHERE session_id = $1`, a.SessionID).Scan(&registered); err != nil {
			return fmt.Errorf("counting attendance: %w", err)
		}

		if registered >= capacity.Int64 {
			return training.ErrSessionFull
		}
	}

	query := `
		INSERT INTO training_attendance (session_id, farmer_id, status, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	if err := dbTx.QueryRowContext(ctx, query, a.SessionID, a.FarmerID, a.Status).Scan(&a.CreatedAt); err != nil {
		if database.IsUniqueViolation(err, "") {
			return training.ErrAlreadyRegistered
		}

		return fmt.Errorf("creating attendance: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ReplaceAttendance deletes every row of the session and inserts rows in a
// single transaction.
func (s *Store) ReplaceAttendance(ctx context.Context, sessionID uuid.UUID, rows []*training.Attendance) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM training_attendance WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clearing attendance: %w", err)
	}

	query := `
		INSERT INTO training_attendance (session_id, farmer_id, status, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`

	for _, a := range rows {
		if err := dbTx.QueryRowContext(ctx, query, sessionID, a.FarmerID, a.Status).Scan(&a.CreatedAt); err != nil {
			return fmt.Errorf("inserting attendance: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
