package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"plant_nursery/database/otpstore"
	"plant_nursery/middleware"
	"plant_nursery/model"
	"plant_nursery/utils"
)

// Options carries what handlers need beyond the database.
type Options struct {
	// OTP enables the two-phase signup when set.
	OTP           *otpstore.Store
	WebhookSecret string
	// UPIPayeeID is the merchant id printed into UPI payment links.
	UPIPayeeID string
	// Today returns the current calendar date; attendance for earlier dates
	// is read-only.
	Today func() string
}

var (
	optsMu sync.RWMutex
	opts   = Options{Today: today}
)

func Configure(o Options) {
	if o.Today == nil {
		o.Today = today
	}
	optsMu.Lock()
	opts = o
	optsMu.Unlock()
}

func options() Options {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts
}

func GetSettings(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, model.Settings{UPIPayeeID: options().UPIPayeeID})
}

func getUserId(r *http.Request) string {
	credential, _ := middleware.UserContextData(r)
	return credential.Id
}

func getRole(r *http.Request) model.Role {
	credential, _ := middleware.UserContextData(r)
	return credential.Roles
}

func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// parseAndValidate answers 400 itself and reports false when body is unusable.
func parseAndValidate(w http.ResponseWriter, r *http.Request, body interface{}) bool {
	if err := utils.ParseBody(r.Body, body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return false
	}
	if err := utils.Validate.Struct(body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, utils.ValidationMessage(err))
		return false
	}
	return true
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func today() string {
	return time.Now().Format(model.DateLayout)
}
