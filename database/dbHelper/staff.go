package dbHelper

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"plant_nursery/model"
)

// GetAttendanceByDate lists every active staff member for the date; members
// without a row are reported as not-marked.
func GetAttendanceByDate(db sqlx.Queryer, date string) ([]model.Attendance, error) {
	SQL := `SELECT u.id AS user_id,
				   u.name,
				   CAST($1 AS TEXT) AS attendance_date,
				   COALESCE(a.status, $2) AS status
			FROM users u
				INNER JOIN user_roles ur ON ur.user_id = u.id AND ur.archived_at IS NULL
				LEFT JOIN attendance a ON a.user_id = u.id AND a.attendance_date = $3
			WHERE ur.role = $4 AND u.archived_at IS NULL
			ORDER BY u.name`
	list := make([]model.Attendance, 0)
	err := sqlx.Select(db, &list, SQL, date, model.AttendanceNotMarked, date, model.RoleStaff)
	return list, err
}

// MarkAttendance upserts the status for (user, date).
func MarkAttendance(db sqlx.Ext, userId, date string, status model.AttendanceStatus) error {
	SQL := `UPDATE attendance SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE user_id = $2 AND attendance_date = $3`
	result, err := db.Exec(SQL, status, userId, date)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil || n > 0 {
		return err
	}
	_, err = db.Exec(`INSERT INTO attendance(user_id, attendance_date, status) VALUES ($1, $2, $3)`, userId, date, status)
	return err
}

func GetSalary(db sqlx.Queryer, userId string) (model.Salary, error) {
	SQL := `SELECT user_id, amount, updated_at FROM salaries WHERE user_id = $1`
	var salary model.Salary
	err := sqlx.Get(db, &salary, SQL, userId)
	return salary, err
}

func UpsertSalary(db sqlx.Ext, userId string, amount decimal.Decimal) error {
	SQL := `UPDATE salaries SET amount = $1, updated_at = CURRENT_TIMESTAMP WHERE user_id = $2`
	result, err := db.Exec(SQL, amount, userId)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil || n > 0 {
		return err
	}
	_, err = db.Exec(`INSERT INTO salaries(user_id, amount) VALUES ($1, $2)`, userId, amount)
	return err
}
