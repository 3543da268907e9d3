package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/database"
	"github.com/taka-daredemo/JICA/internal/farmer"
)

const farmerCodeKey = "farmers_farmer_code_key"

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

const selectFarmerColumns = `
	f.id, f.farmer_code, f.name, f.location, f.contact_phone, f.contact_email,
	f.land_size_hectares, f.year_group, f.status, f.baseline_income,
	(SELECT COUNT(*) FROM training_attendance a WHERE a.farmer_id = f.id),
	(SELECT COUNT(*) FROM farmer_income_records r WHERE r.farmer_id = f.id),
	f.created_at, f.updated_at
`

func scanFarmer(s scanner) (*farmer.Farmer, error) {
	var f farmer.Farmer

	if err := s.Scan(
		&f.ID, &f.FarmerCode, &f.Name, &f.Location, &f.ContactPhone, &f.ContactEmail,
		&f.LandSizeHectares, &f.YearGroup, &f.Status, &f.BaselineIncome,
		&f.TrainingCount, &f.IncomeRecordCount,
		&f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &f, nil
}

const insertFarmer = `
	INSERT INTO farmers (farmer_code, name, location, contact_phone, contact_email, land_size_hectares,
		year_group, status, baseline_income, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insert(ctx context.Context, q queryRower, f *farmer.Farmer) error {
	err := q.QueryRowContext(ctx, insertFarmer,
		f.FarmerCode,
		f.Name,
		f.Location,
		f.ContactPhone,
		f.ContactEmail,
		f.LandSizeHectares,
		f.YearGroup,
		f.Status,
		f.BaselineIncome,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, farmerCodeKey) {
			return farmer.ErrDuplicateCode
		}

		return fmt.Errorf("creating farmer: %w", err)
	}

	return nil
}

func (s *Store) CreateFarmer(ctx context.Context, f *farmer.Farmer) error {
	return insert(ctx, s.db, f)
}

func (s *Store) GetFarmer(ctx context.Context, id uuid.UUID) (*farmer.Farmer, error) {
	query := `SELECT ` + selectFarmerColumns + ` FROM farmers f WHERE f.id = $1`

	f, err := scanFarmer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, farmer.ErrNotFound
		}

		return nil, fmt.Errorf("getting farmer: %w", err)
	}

	return f, nil
}

func (s *Store) ListFarmers(ctx context.Context, filter farmer.ListFilter) ([]*farmer.Farmer, error) {
	query := `SELECT ` + selectFarmerColumns + ` FROM farmers f WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.YearGroup != nil {
		query += fmt.Sprintf(" AND f.year_group = $%d", argIdx)

		args = append(args, *filter.YearGroup)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (f.name ILIKE $%d OR f.farmer_code ILIKE $%d)", argIdx, argIdx)

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	if filter.HasBaseline {
		query += " AND f.baseline_income > 0"
	}

	query += " ORDER BY f.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing farmers: %w", err)
	}
	defer rows.Close()

	var farmers []*farmer.Farmer

	for rows.Next() {
		f, err := scanFarmer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning farmer: %w", err)
		}

		farmers = append(farmers, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating farmer rows: %w", err)
	}

	return farmers, nil
}

func (s *Store) CountByYearGroup(ctx context.Context) (farmer.GroupCounts, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE year_group = 1),
			COUNT(*) FILTER (WHERE year_group = 2),
			COUNT(*) FILTER (WHERE year_group = 3)
		FROM farmers
	`

	var c farmer.GroupCounts
	if err := s.db.QueryRowContext(ctx, query).Scan(&c.Total, &c.Year1, &c.Year2, &c.Year3); err != nil {
		return farmer.GroupCounts{}, fmt.Errorf("counting farmers: %w", err)
	}

	return c, nil
}

func (s *Store) CreateIncomeRecord(ctx context.Context, r *farmer.IncomeRecord) error {
	query := `
		INSERT INTO farmer_income_records (farmer_id, record_date, income_amount, record_type, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, r.FarmerID, r.RecordDate, r.IncomeAmount, r.RecordType, r.Notes).
		Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating income record: %w", err)
	}

	return nil
}

func (s *Store) ListIncomeRecords(ctx context.Context, filter farmer.IncomeFilter) ([]*farmer.IncomeRecord, error) {
	query := `
		SELECT id, farmer_id, record_date, income_amount, record_type, notes, created_at
		FROM farmer_income_records
		WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.FarmerID != nil {
		query += fmt.Sprintf(" AND farmer_id = $%d", argIdx)

		args = append(args, *filter.FarmerID)
		argIdx++
	}

	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			placeholders[i] = fmt.Sprintf("$%d", argIdx)

			args = append(args, t)
			argIdx++
		}

		query += " AND record_type IN (" + strings.Join(placeholders, ", ") + ")"
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND record_date >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND record_date <= $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	query += " ORDER BY record_date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing income records: %w", err)
	}
	defer rows.Close()

	var records []*farmer.IncomeRecord

	for rows.Next() {
		var r farmer.IncomeRecord

		var typeStr string

		if err := rows.Scan(&r.ID, &r.FarmerID, &r.RecordDate, &r.IncomeAmount, &typeStr, &r.Notes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning income record: %w", err)
		}

		r.RecordType = farmer.RecordType(typeStr)
		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating income rows: %w", err)
	}

	return records, nil
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport opens a transaction holding an exclusive roster lock, so two
// concurrent imports cannot both pass the duplicate check.
func (s *Store) BeginImport(ctx context.Context) (farmer.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext('farmers_import'))"); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) ExistingCodes(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(codes))
	args := make([]any, len(codes))

	for i, c := range codes {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = c
	}

	query := `SELECT farmer_code FROM farmers WHERE farmer_code IN (` + strings.Join(placeholders, ", ") + `) ORDER BY farmer_code`

	rows, err := itx.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding existing codes: %w", err)
	}
	defer rows.Close()

	var existing []string

	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scanning farmer code: %w", err)
		}

		existing = append(existing, code)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating farmer codes: %w", err)
	}

	return existing, nil
}

func (itx *importTx) CreateFarmers(ctx context.Context, farmers []*farmer.Farmer) error {
	for _, f := range farmers {
		if err := insert(ctx, itx.tx, f); err != nil {
			return err
		}
	}

	return nil
}
