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

const createTasksTables = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS task_owners (
	task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	PRIMARY KEY (task_id, user_id)
);
`

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTasksTables); err != nil {
		return fmt.Errorf("create task tables: %w", err)
	}
	return nil
}

// Create inserts the task and its initial owner atomically.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task, ownerID int64) (int64, error) {
	task.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create task: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `INSERT INTO tasks (description, created_at) VALUES (?, ?)`,
		task.Description, task.CreatedAt)
	if err != nil {
		err = fmt.Errorf("insert task: %w", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		err = fmt.Errorf("task last insert id: %w", err)
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO task_owners (task_id, user_id) VALUES (?, ?)`, id, ownerID); err != nil {
		err = fmt.Errorf("insert task owner: %w", err)
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create task: %w", err)
	}

	task.ID = id
	task.Owners = []int64{ownerID}
	return id, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	err := r.db.QueryRowContext(ctx, `SELECT id, description, created_at FROM tasks WHERE id = ?`, id).
		Scan(&task.ID, &task.Description, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}

	owners, err := r.owners(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Owners = owners
	return &task, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT t.id, t.description, t.created_at
FROM tasks t
JOIN task_owners o ON o.task_id = t.id
WHERE o.user_id = ?
ORDER BY t.id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.Description, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	for i := range tasks {
		owners, err := r.owners(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Owners = owners
	}
	return tasks, nil
}

func (r *TaskRepository) AddOwner(ctx context.Context, taskID, userID int64) error {
	if _, err := r.GetByID(ctx, taskID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO task_owners (task_id, user_id) VALUES (?, ?)`, taskID, userID); err != nil {
		return fmt.Errorf("insert task owner: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *TaskRepository) owners(ctx context.Context, taskID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM task_owners WHERE task_id = ? ORDER BY user_id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("query task owners: %w", err)
	}
	defer rows.Close()

	var owners []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan task owner: %w", err)
		}
		owners = append(owners, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task owners: %w", err)
	}
	return owners, nil
}
