package store_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taka-daredemo/JICA/internal/farmer"
	"github.com/taka-daredemo/JICA/internal/farmer/store"
)

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db), mock
}

func TestStore_CreateFarmer_DuplicateCode(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO farmers")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "farmers_farmer_code_key"})

	err := s.CreateFarmer(context.Background(), &farmer.Farmer{FarmerCode: "F-001", Name: "Akua", Status: "Active"})
	assert.ErrorIs(t, err, farmer.ErrDuplicateCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CountByYearGroup(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE year_group = 1)")).
		WillReturnRows(sqlmock.NewRows([]string{"total", "y1", "y2", "y3"}).AddRow(120, 50, 40, 30))

	got, err := s.CountByYearGroup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, farmer.GroupCounts{Total: 120, Year1: 50, Year2: 40, Year3: 30}, got)
}

func TestStore_GetFarmer_NullableColumns(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM farmers f WHERE f.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "farmer_code", "name", "location", "contact_phone", "contact_email",
			"land_size_hectares", "year_group", "status", "baseline_income",
			"trainings", "incomes", "created_at", "updated_at",
		}).AddRow(id.String(), "F-010", "Kofi", "Tamale", "", "", nil, 2, "Active", "80000.00", 3, 1, now, now))

	got, err := s.GetFarmer(context.Background(), id)
	require.NoError(t, err)

	assert.Nil(t, got.LandSizeHectares)
	require.NotNil(t, got.YearGroup)
	assert.Equal(t, 2, *got.YearGroup)
	require.NotNil(t, got.BaselineIncome)
	assert.True(t, decimal.NewFromInt(80000).Equal(*got.BaselineIncome))
	assert.Equal(t, 3, got.TrainingCount)
}

func TestStore_ListIncomeRecords_TypeFilter(t *testing.T) {
	s, mock := newStore(t)

	farmerID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("AND farmer_id = $1 AND record_type IN ($2, $3) ORDER BY record_date DESC")).
		WithArgs(farmerID, farmer.RecordAnnual, farmer.RecordSale).
		WillReturnRows(sqlmock.NewRows([]string{"id", "farmer_id", "record_date", "income_amount", "record_type", "notes", "created_at"}).
			AddRow(uuid.NewString(), farmerID.String(), time.Now(), "150000.00", "Annual", "", time.Now()))

	got, err := s.ListIncomeRecords(context.Background(), farmer.IncomeFilter{
		FarmerID: &farmerID,
		Types:    []farmer.RecordType{farmer.RecordAnnual, farmer.RecordSale},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, farmer.RecordAnnual, got[0].RecordType)
}
