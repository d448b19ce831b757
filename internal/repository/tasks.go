package repository

import (
	"database/sql"
	"time"

	"taskboard/internal/models"

	"github.com/google/uuid"
)

const taskColumns = "id, user_id, task_name, task_details, task_status, due_date, created_at, updated_at"

func scanTask(row *sql.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.UserID, &t.TaskName, &t.TaskDetails, &t.TaskStatus, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func CreateTask(db *sql.DB, t *models.Task) error {
	return db.QueryRow(
		"INSERT INTO tasks (id, user_id, task_name, task_details, task_status, due_date) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at",
		t.ID, t.UserID, t.TaskName, t.TaskDetails, t.TaskStatus, t.DueDate,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func FindTaskByID(db *sql.DB, id uuid.UUID) (*models.Task, error) {
	return scanTask(db.QueryRow(
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1", id))
}

// UpdateTaskFields applies a partial update; nil pointers leave the column
// untouched. Returns the number of rows touched so callers can detect a
// missing task.
func UpdateTaskFields(db *sql.DB, id uuid.UUID, taskName, taskDetails *string, dueDate *time.Time) (int64, error) {
	res, err := db.Exec(`
		UPDATE tasks
		SET task_name = COALESCE($1, task_name),
			task_details = COALESCE($2, task_details),
			due_date = COALESCE($3, due_date),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $4`,
		taskName, taskDetails, dueDate, id,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func UpdateTaskStatus(db *sql.DB, id uuid.UUID, status string) (int64, error) {
	res, err := db.Exec(
		"UPDATE tasks SET task_status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func DeleteTask(db *sql.DB, id uuid.UUID) (int64, error) {
	res, err := db.Exec("DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListTasksByUser returns the user's tasks oldest first. A user with no tasks
// gets an empty slice, not nil.
func ListTasksByUser(db *sql.DB, userID uuid.UUID) ([]models.Task, error) {
	rows, err := db.Query(
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = $1 ORDER BY created_at",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.TaskName, &t.TaskDetails, &t.TaskStatus, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
