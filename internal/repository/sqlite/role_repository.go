package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"auth-server/internal/repository"
)

const createRolesTables = `
CREATE TABLE IF NOT EXISTS roles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS user_roles (
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	role_id INTEGER NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
	PRIMARY KEY (user_id, role_id)
);
`

type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) repository.RoleRepository {
	return &RoleRepository{db: db}
}

// Init creates the role tables and seeds the built-in role names.
func (r *RoleRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRolesTables); err != nil {
		return fmt.Errorf("create role tables: %w", err)
	}
	for _, name := range []string{"user", "admin"} {
		if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO roles (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("seed role %q: %w", name, err)
		}
	}
	return nil
}

func (r *RoleRepository) RolesOf(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT r.name
FROM roles r
JOIN user_roles ur ON ur.role_id = r.id
WHERE ur.user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return names, nil
}

func (r *RoleRepository) HasRole(ctx context.Context, userID int64, role string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1
FROM roles r
JOIN user_roles ur ON ur.role_id = r.id
WHERE ur.user_id = ? AND r.name = ?`,
		userID, role,
	).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("query role membership: %w", err)
	}
	return true, nil
}

func (r *RoleRepository) Assign(ctx context.Context, userID int64, role string) error {
	var roleID int64
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM roles WHERE name = ?`, role).Scan(&roleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("role %q: %w", role, repository.ErrNotFound)
		}
		return fmt.Errorf("lookup role %q: %w", role, err)
	}
	if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO user_roles (user_id, role_id) VALUES (?, ?)`, userID, roleID); err != nil {
		return fmt.Errorf("assign role %q: %w", role, err)
	}
	return nil
}
