package handler

import (
	"net/http"
	"time"

	"plant_nursery/database"
	"plant_nursery/database/dbHelper"
	"plant_nursery/model"
	"plant_nursery/utils"
)

func GetAttendance(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = options().Today()
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "date must be YYYY-MM-DD")
		return
	}
	list, err := dbHelper.GetAttendanceByDate(database.Nursery, date)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get attendance")
		return
	}
	if getRole(r) != model.RoleAdmin {
		list = ownAttendance(list, getUserId(r))
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// MarkAttendance records a status for today or a future date. Dates compare
// lexically because both sides use DateLayout.
func MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var body model.AttendanceRequest
	if !parseAndValidate(w, r, &body) {
		return
	}
	if body.Date < options().Today() {
		utils.RespondError(w, http.StatusBadRequest, nil, "attendance for past dates cannot be changed")
		return
	}
	if !isStaff(w, body.UserId) {
		return
	}
	if err := dbHelper.MarkAttendance(database.Nursery, body.UserId, body.Date, body.Status); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to mark attendance")
		return
	}
	utils.RespondJSON(w, http.StatusOK, model.Attendance{UserId: body.UserId, Date: body.Date, Status: body.Status})
}

func ownAttendance(list []model.Attendance, userId string) []model.Attendance {
	own := make([]model.Attendance, 0, 1)
	for _, row := range list {
		if row.UserId == userId {
			own = append(own, row)
		}
	}
	return own
}

func isStaff(w http.ResponseWriter, userId string) bool {
	user, err := dbHelper.GetUserByUserId(database.Nursery, userId)
	if isNotFound(err) || (err == nil && user.Role != model.RoleStaff) {
		utils.RespondError(w, http.StatusNotFound, nil, "Staff member not found")
		return false
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get staff member")
		return false
	}
	return true
}

func GetSalary(w http.ResponseWriter, r *http.Request) {
	userId := urlParam(r, "id")
	if getRole(r) != model.RoleAdmin && userId != getUserId(r) {
		utils.RespondError(w, http.StatusForbidden, nil, "staff can only view their own salary")
		return
	}
	if !isStaff(w, userId) {
		return
	}
	salary, err := dbHelper.GetSalary(database.Nursery, userId)
	if isNotFound(err) {
		utils.RespondJSON(w, http.StatusOK, model.Salary{UserId: userId})
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get salary")
		return
	}
	utils.RespondJSON(w, http.StatusOK, salary)
}

func UpdateSalary(w http.ResponseWriter, r *http.Request) {
	var body model.SalaryRequest
	if !parseAndValidate(w, r, &body) {
		return
	}
	if !body.Amount.IsPositive() {
		utils.RespondError(w, http.StatusBadRequest, nil, "amount must be positive")
		return
	}
	userId := urlParam(r, "id")
	if !isStaff(w, userId) {
		return
	}
	if err := dbHelper.UpsertSalary(database.Nursery, userId, body.Amount); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to update salary")
		return
	}
	salary, err := dbHelper.GetSalary(database.Nursery, userId)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get salary")
		return
	}
	utils.RespondJSON(w, http.StatusOK, salary)
}
