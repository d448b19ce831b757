package repository

import (
	"database/sql"

	"taskboard/internal/models"

	"github.com/google/uuid"
)

const userColumns = "id, email, full_name, password, refresh_token, created_at, updated_at"

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Password, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts the user and fills in the store-maintained timestamps.
// Duplicate emails surface as a pq unique violation.
func CreateUser(db *sql.DB, u *models.User) error {
	return db.QueryRow(
		"INSERT INTO users (id, email, full_name, password) VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at",
		u.ID, u.Email, u.FullName, u.Password,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}

func FindUserByID(db *sql.DB, id uuid.UUID) (*models.User, error) {
	return scanUser(db.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func FindUserByEmail(db *sql.DB, email string) (*models.User, error) {
	return scanUser(db.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

// UpdateRefreshToken overwrites the single active refresh token. Pass an
// invalid NullString to clear it (logout).
func UpdateRefreshToken(db *sql.DB, id uuid.UUID, refreshToken sql.NullString) error {
	_, err := db.Exec(
		"UPDATE users SET refresh_token = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		refreshToken, id)
	return err
}

func UpdatePassword(db *sql.DB, id uuid.UUID, hashedPassword string) error {
	_, err := db.Exec(
		"UPDATE users SET password = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		hashedPassword, id)
	return err
}

func UpdateFullName(db *sql.DB, id uuid.UUID, fullName string) error {
	_, err := db.Exec(
		"UPDATE users SET full_name = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		fullName, id)
	return err
}
