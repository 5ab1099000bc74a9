package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Tomlord1122/todo-app/internal/domain"
)

const taskColumns = "id, title, description, completed"

// sqlTaskRepository implements TaskRepository with plain parameterized
// statements over the pgx database/sql driver.
type sqlTaskRepository struct {
	db *sql.DB
}

func NewSQLTaskRepository(db *sql.DB) TaskRepository {
	return &sqlTaskRepository{db: db}
}

func (r *sqlTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	row := r.db.QueryRowContext(ctx,
		"INSERT INTO todos (title, description, completed) VALUES ($1, $2, $3) RETURNING "+taskColumns,
		task.Title, task.Description, task.Completed)
	if err := scanTask(row, task); err != nil {
		return storeError("insert todo", err)
	}
	return nil
}

func (r *sqlTaskRepository) FindByID(ctx context.Context, id uint) (*domain.Task, error) {
	if !storable(id) {
		return nil, ErrNotFound
	}
	var task domain.Task
	row := r.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM todos WHERE id = $1", id)
	if err := scanTask(row, &task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storeError("query todo", err)
	}
	return &task, nil
}

func (r *sqlTaskRepository) FindAll(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+taskColumns+" FROM todos ORDER BY id ASC")
	if err != nil {
		return nil, storeError("query todos", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := scanTask(rows, &task); err != nil {
			return nil, storeError("scan todo", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate todos", err)
	}
	return tasks, nil
}

// Update keeps absent fields through COALESCE, so partial and full updates
// share one statement.
func (r *sqlTaskRepository) Update(ctx context.Context, id uint, changes domain.TaskChanges) (*domain.Task, error) {
	if !storable(id) {
		return nil, ErrNotFound
	}
	var task domain.Task
	row := r.db.QueryRowContext(ctx,
		`UPDATE todos SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			completed = COALESCE($3, completed)
		WHERE id = $4 RETURNING `+taskColumns,
		changes.Title, changes.Description, changes.Completed, id)
	if err := scanTask(row, &task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storeError("update todo", err)
	}
	return &task, nil
}

func (r *sqlTaskRepository) Delete(ctx context.Context, id uint) error {
	if !storable(id) {
		return ErrNotFound
	}
	result, err := r.db.ExecContext(ctx, "DELETE FROM todos WHERE id = $1", id)
	if err != nil {
		return storeError("delete todo", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner, task *domain.Task) error {
	return s.Scan(&task.ID, &task.Title, &task.Description, &task.Completed)
}

// storeError wraps err, naming the violated constraint when Postgres reports one.
func storeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return fmt.Errorf("%s: constraint %s violated (%s): %w", op, pgErr.ConstraintName, pgErr.Code, err)
	}
	if errors.As(err, &pgErr) && pgErr.ColumnName != "" {
		return fmt.Errorf("%s: column %s rejected (%s): %w", op, pgErr.ColumnName, pgErr.Code, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
