package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"auth-server/internal/domain"
	"auth-server/internal/repository"
)

const createRequestsTable = `
CREATE TABLE IF NOT EXISTS requests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL,
	solicitor_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL
);
`

type RequestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRequestsTable); err != nil {
		return fmt.Errorf("create requests table: %w", err)
	}
	return nil
}

func (r *RequestRepository) Create(ctx context.Context, request *domain.Request) (int64, error) {
	request.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO requests (description, solicitor_id, created_at)
VALUES (?, ?, ?)`,
		request.Description, request.SolicitorID, request.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("request last insert id: %w", err)
	}
	request.ID = id
	return id, nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	var request domain.Request
	err := r.db.QueryRowContext(ctx, `
SELECT id, description, solicitor_id, created_at
FROM requests
WHERE id = ?`,
		id,
	).Scan(&request.ID, &request.Description, &request.SolicitorID, &request.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("request: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan request: %w", err)
	}
	return &request, nil
}

func (r *RequestRepository) ListBySolicitor(ctx context.Context, solicitorID int64) ([]domain.Request, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, description, solicitor_id, created_at
FROM requests
WHERE solicitor_id = ?
ORDER BY id`,
		solicitorID,
	)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		var request domain.Request
		if err := rows.Scan(&request.ID, &request.Description, &request.SolicitorID, &request.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return requests, nil
}

func (r *RequestRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM requests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("request: %w", repository.ErrNotFound)
	}
	return nil
}
