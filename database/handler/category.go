package handler

import (
	"net/http"

	"plant_nursery/database"
	"plant_nursery/database/dbHelper"
	"plant_nursery/model"
	"plant_nursery/utils"
)

// GetAllCategory answers with a bare array, the shape storefront clients
// have always received for categories.
func GetAllCategory(w http.ResponseWriter, r *http.Request) {
	list, err := dbHelper.GetAllCategory(database.Nursery)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get categories")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func parseCategory(w http.ResponseWriter, r *http.Request) (model.CategoryRequest, bool) {
	var body model.CategoryRequest
	if !parseAndValidate(w, r, &body) {
		return body, false
	}
	if !body.Type.Valid() {
		utils.RespondError(w, http.StatusBadRequest, nil, "unknown category type")
		return body, false
	}
	return body, true
}

func CreateCategory(w http.ResponseWriter, r *http.Request) {
	body, ok := parseCategory(w, r)
	if !ok {
		return
	}
	exist, err := dbHelper.IsCategoryExist(database.Nursery, body.Name)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to check category existence")
		return
	}
	if exist {
		utils.RespondError(w, http.StatusConflict, nil, "Category already exist")
		return
	}
	id, err := dbHelper.CreateCategory(database.Nursery, body.Name, body.Type, body.Description)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to create category")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, model.Category{Id: id, Name: body.Name, Type: body.Type, Description: body.Description})
}

func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	body, ok := parseCategory(w, r)
	if !ok {
		return
	}
	id := urlParam(r, "id")
	err := dbHelper.UpdateCategory(database.Nursery, id, body.Name, body.Type, body.Description)
	if isNotFound(err) {
		utils.RespondError(w, http.StatusNotFound, nil, "Category not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to update category")
		return
	}
	utils.RespondJSON(w, http.StatusOK, model.Category{Id: id, Name: body.Name, Type: body.Type, Description: body.Description})
}

func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	err := dbHelper.DeleteCategory(database.Nursery, urlParam(r, "id"))
	if isNotFound(err) {
		utils.RespondError(w, http.StatusNotFound, nil, "Category not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to delete category")
		return
	}
	utils.RespondJSON(w, http.StatusOK, model.Message{Message: "Category deleted successfully"})
}
