package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taka-daredemo/JICA/internal/database"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "farmers_farmer_code_key"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "AnyConstraint", err: dup, want: true},
		{name: "Wrapped", err: fmt.Errorf("creating farmer: %w", dup), constraint: "farmers_farmer_code_key", want: true},
		{name: "OtherConstraint", err: dup, constraint: "users_email_key", want: false},
		{name: "ForeignKey", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "NotPg", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, database.IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}
