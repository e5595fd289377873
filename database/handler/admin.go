package handler

import (
	"net/http"

	"plant_nursery/database"
	"plant_nursery/database/dbHelper"
	"plant_nursery/model"
	"plant_nursery/utils"
)

func GetAllUser(w http.ResponseWriter, r *http.Request) {
	list, err := dbHelper.GetAllUser(database.Nursery)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get users")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var body model.RoleRequestBody
	if !parseAndValidate(w, r, &body) {
		return
	}
	userId := urlParam(r, "id")
	if userId == getUserId(r) {
		utils.RespondError(w, http.StatusBadRequest, nil, "cannot change your own role")
		return
	}
	if err := dbHelper.UpdateUserRole(database.Nursery, userId, body.Role); err != nil {
		if isNotFound(err) {
			utils.RespondError(w, http.StatusNotFound, nil, "User not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to update role")
		return
	}
	user, err := dbHelper.GetUserByUserId(database.Nursery, userId)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get user")
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}

func DeleteUser(w http.ResponseWriter, r *http.Request) {
	userId := urlParam(r, "id")
	if userId == getUserId(r) {
		utils.RespondError(w, http.StatusBadRequest, nil, "cannot delete yourself")
		return
	}
	if err := dbHelper.DeleteUser(database.Nursery, userId); err != nil {
		if isNotFound(err) {
			utils.RespondError(w, http.StatusNotFound, nil, "User not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to delete user")
		return
	}
	utils.RespondJSON(w, http.StatusOK, model.Message{Message: "User deleted successfully"})
}

func GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := dbHelper.GetStats(database.Nursery)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get stats")
		return
	}
	utils.RespondJSON(w, http.StatusOK, stats)
}
