package handler

import (
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"plant_nursery/database"
	"plant_nursery/database/dbHelper"
	"plant_nursery/database/otpstore"
	"plant_nursery/middleware"
	"plant_nursery/model"
	"plant_nursery/utils"
)

// Signup creates an account. With an OTP store configured the first call
// only parks the signup and a second call carrying the otp completes it.
func Signup(w http.ResponseWriter, r *http.Request) {
	var body model.SignupRequestBody
	if err := utils.ParseBody(r.Body, &body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}

	store := options().OTP
	if store != nil && body.OTP != "" {
		confirmSignup(w, r, store, body)
		return
	}

	if err := utils.Validate.Struct(body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, utils.ValidationMessage(err))
		return
	}

	exist, existErr := dbHelper.IsUserExist(database.Nursery, body.Email)
	if existErr != nil {
		utils.RespondError(w, http.StatusInternalServerError, existErr, "Failed to check existence")
		return
	}
	if exist {
		utils.RespondError(w, http.StatusConflict, nil, "User already exist")
		return
	}

	hashPassword, hasErr := utils.HashPassword(body.Password)
	if hasErr != nil {
		utils.RespondError(w, http.StatusInternalServerError, hasErr, "failed to secure password")
		return
	}

	if store != nil {
		code, err := store.Begin(r.Context(), otpstore.PendingSignup{
			Name:         body.Name,
			Email:        body.Email,
			Phone:        body.Phone,
			PasswordHash: hashPassword,
		})
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, err, "failed to start signup")
			return
		}
		// mail delivery is external; the code is only logged at debug level
		logrus.WithField("email", body.Email).Debugf("Signup: otp %s issued", code)
		utils.RespondJSON(w, http.StatusAccepted, model.SignupResponse{OTPRequired: true})
		return
	}

	createUser(w, body.Name, body.Email, body.Phone, hashPassword)
}

func confirmSignup(w http.ResponseWriter, r *http.Request, store *otpstore.Store, body model.SignupRequestBody) {
	pending, err := store.Confirm(r.Context(), body.Email, body.OTP)
	if errors.Is(err, otpstore.ErrInvalidOTP) || errors.Is(err, otpstore.ErrNoPendingSignup) {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid or expired otp")
		return
	}
	if errors.Is(err, otpstore.ErrTooManyAttempts) {
		utils.RespondError(w, http.StatusTooManyRequests, err, "too many wrong codes, please sign up again")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "failed to confirm signup")
		return
	}
	createUser(w, pending.Name, pending.Email, pending.Phone, pending.PasswordHash)
}

func createUser(w http.ResponseWriter, name, email, phone, passwordHash string) {
	var userID string
	txErr := database.Tx(func(tx *sqlx.Tx) error {
		var err error
		userID, err = dbHelper.CreateUser(tx, name, email, phone, passwordHash)
		if err != nil {
			return err
		}
		return dbHelper.CreateUserRole(tx, userID, model.RoleUser)
	})
	if dbHelper.IsUniqueViolation(txErr) {
		utils.RespondError(w, http.StatusConflict, nil, "User already exist")
		return
	}
	if txErr != nil {
		utils.RespondError(w, http.StatusInternalServerError, txErr, "failed to create user")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, model.SignupResponse{
		User: &model.UserResponseBody{UserId: userID, Name: name, Email: email},
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	var body model.LoginRequestBody
	if !parseAndValidate(w, r, &body) {
		return
	}

	userId, passwordHash, err := dbHelper.GetUserIDByEmail(database.Nursery, body.Email)
	if isNotFound(err) {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Incorrect credentials")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "failed to look up user")
		return
	}
	if err := utils.CheckPassword(body.Password, passwordHash); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Incorrect credentials")
		return
	}

	role, err := dbHelper.GetUserRoles(database.Nursery, userId)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "error in getting user role")
		return
	}

	token, err := middleware.GenerateJWT(userId, role)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "error in generating jwt token")
		return
	}
	utils.RespondJSON(w, http.StatusOK, model.LoginResponse{Token: token, Role: role})
}

func GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := dbHelper.GetUserByUserId(database.Nursery, getUserId(r))
	if isNotFound(err) {
		// the account was removed after the token was issued
		utils.RespondError(w, http.StatusUnauthorized, nil, "user no longer exists")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "failed to get profile")
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}

func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body model.ProfileRequestBody
	if !parseAndValidate(w, r, &body) {
		return
	}
	userId := getUserId(r)
	if err := dbHelper.UpdateProfile(database.Nursery, userId, body.Name, body.Phone); err != nil {
		if isNotFound(err) {
			utils.RespondError(w, http.StatusUnauthorized, nil, "user no longer exists")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "failed to update profile")
		return
	}
	GetProfile(w, r)
}

func ChangePassword(w http.ResponseWriter, r *http.Request) {
	var body model.PasswordRequestBody
	if !parseAndValidate(w, r, &body) {
		return
	}
	userId := getUserId(r)
	hash, err := dbHelper.GetPasswordHash(database.Nursery, userId)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "failed to load password")
		return
	}
	if err := utils.CheckPassword(body.CurrentPassword, hash); err != nil {
		utils.RespondError(w, http.StatusBadRequest, nil, "current password is incorrect")
		return
	}
	newHash, err := utils.HashPassword(body.NewPassword)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "failed to secure password")
		return
	}
	if err := dbHelper.UpdatePassword(database.Nursery, userId, newHash); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "failed to update password")
		return
	}
	utils.RespondJSON(w, http.StatusOK, model.Message{Message: "Password updated successfully"})
}
