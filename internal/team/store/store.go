package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/taka-daredemo/JICA/internal/team"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListUsers(ctx context.Context, filter team.ListFilter) ([]*team.User, error) {
	query := `
		SELECT u.id, u.email, u.name, COALESCE(u.avatar_url, ''), u.status, u.created_at,
			COALESCE((SELECT string_agg(r.name, ',' ORDER BY r.name)
				FROM user_roles ur JOIN roles r ON ur.role_id = r.id
				WHERE ur.user_id = u.id), ''),
			(SELECT COUNT(*) FROM tasks t WHERE t.assignee_id = u.id AND t.status <> 'Completed'),
			(SELECT COUNT(*) FROM tasks t WHERE t.assignee_id = u.id AND t.status = 'Completed')
		FROM users u
		WHERE 1 = 1
	`

	var args []any

	if filter.Status != nil {
		query += " AND u.status = $1"

		args = append(args, *filter.Status)
	}

	query += " ORDER BY u.name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*team.User

	for rows.Next() {
		var (
			u         team.User
			statusStr string
			roles     string
		)

		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.AvatarURL, &statusStr, &u.CreatedAt,
			&roles, &u.ActiveTasks, &u.CompletedTasks,
		); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}

		u.Status = team.Status(statusStr)

		if roles != "" {
			u.Roles = strings.Split(roles, ",")
		}

		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}

func (s *Store) CountUsers(ctx context.Context) (team.Counts, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'Active')
		FROM users
	`

	var c team.Counts
	if err := s.db.QueryRowContext(ctx, query).Scan(&c.Total, &c.Active); err != nil {
		return team.Counts{}, fmt.Errorf("counting users: %w", err)
	}

	return c, nil
}
