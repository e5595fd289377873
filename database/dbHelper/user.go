package dbHelper

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plant_nursery/model"
)

func CreateUser(db sqlx.Ext, name, email, phone, password string) (string, error) {
	SQL := `INSERT INTO users(id, name, email, phone, password) VALUES ($1, $2, TRIM(LOWER($3)), $4, $5)`
	userID := uuid.NewString()
	if _, err := db.Exec(SQL, userID, name, email, phone, password); err != nil {
		return "", err
	}
	return userID, nil
}

func IsUserExist(db sqlx.Queryer, email string) (bool, error) {
	SQL := `SELECT id FROM users WHERE email = TRIM(LOWER($1)) AND archived_at IS NULL`
	var id string
	err := sqlx.Get(db, &id, SQL, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return true, nil
}

func CreateUserRole(db sqlx.Ext, userID string, role model.Role) error {
	SQL := `INSERT INTO user_roles(user_id, role) VALUES ($1, $2)`
	_, err := db.Exec(SQL, userID, role)
	return err
}

func UpdateUserRole(db sqlx.Ext, userID string, role model.Role) error {
	SQL := `UPDATE user_roles SET role = $1 WHERE user_id = $2 AND archived_at IS NULL`
	return expectAffected(db.Exec(SQL, role, userID))
}

const userColumns = `u.id, u.name, u.email, u.phone, ur.role, u.created_at`

func GetAllUser(db sqlx.Queryer) ([]model.User, error) {
	SQL := `SELECT ` + userColumns + `
			FROM users u
				INNER JOIN user_roles ur ON u.id = ur.user_id AND ur.archived_at IS NULL
			WHERE u.archived_at IS NULL
			ORDER BY u.created_at DESC, u.name`
	list := make([]model.User, 0)
	err := sqlx.Select(db, &list, SQL)
	return list, err
}

func GetUsersByRole(db sqlx.Queryer, role model.Role) ([]model.User, error) {
	SQL := `SELECT ` + userColumns + `
			FROM users u
				INNER JOIN user_roles ur ON u.id = ur.user_id AND ur.archived_at IS NULL
			WHERE ur.role = $1 AND u.archived_at IS NULL
			ORDER BY u.name`
	list := make([]model.User, 0)
	err := sqlx.Select(db, &list, SQL, role)
	return list, err
}

func GetUserByUserId(db sqlx.Queryer, userId string) (model.User, error) {
	SQL := `SELECT ` + userColumns + `
			FROM users u
				INNER JOIN user_roles ur ON u.id = ur.user_id AND ur.archived_at IS NULL
			WHERE u.id = $1 AND u.archived_at IS NULL`
	var user model.User
	err := sqlx.Get(db, &user, SQL, userId)
	return user, err
}

func GetUserIDByEmail(db sqlx.Queryer, email string) (string, string, error) {
	SQL := `SELECT
				u.id,
				u.password
			FROM
				users u
			WHERE
				u.archived_at IS NULL
				AND u.email = TRIM(LOWER($1))`
	var userID string
	var passwordHash string
	err := db.QueryRowx(SQL, email).Scan(&userID, &passwordHash)
	return userID, passwordHash, err
}

func GetPasswordHash(db sqlx.Queryer, userId string) (string, error) {
	SQL := `SELECT password FROM users WHERE id = $1 AND archived_at IS NULL`
	var hash string
	err := sqlx.Get(db, &hash, SQL, userId)
	return hash, err
}

func UpdatePassword(db sqlx.Ext, userId, passwordHash string) error {
	SQL := `UPDATE users SET password = $1 WHERE id = $2 AND archived_at IS NULL`
	return expectAffected(db.Exec(SQL, passwordHash, userId))
}

func UpdateProfile(db sqlx.Ext, userId, name, phone string) error {
	SQL := `UPDATE users SET name = $1, phone = $2 WHERE id = $3 AND archived_at IS NULL`
	return expectAffected(db.Exec(SQL, name, phone, userId))
}

func GetUserRoles(db sqlx.Queryer, userID string) (model.Role, error) {
	SQL := `SELECT role FROM user_roles WHERE user_id = $1 AND archived_at IS NULL`
	var role model.Role
	err := sqlx.Get(db, &role, SQL, userID)
	return role, err
}

func DeleteUser(db sqlx.Ext, userId string) error {
	SQL := `UPDATE users SET archived_at = CURRENT_TIMESTAMP WHERE id = $1 AND archived_at IS NULL`
	return expectAffected(db.Exec(SQL, userId))
}

// expectAffected turns a no-op UPDATE/DELETE into sql.ErrNoRows so handlers
// can answer 404 the same way they do for reads.
func expectAffected(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
