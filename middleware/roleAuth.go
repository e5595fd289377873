package middleware

import (
	"net/http"

	"plant_nursery/model"
	"plant_nursery/utils"
)

type ContextKeys string

const (
	UserContext ContextKeys = "userInfo"
)

// UserContextData returns the credential stored by AuthMiddleware.
func UserContextData(r *http.Request) (model.UserCredential, bool) {
	credential, ok := r.Context().Value(UserContext).(model.UserCredential)
	return credential, ok
}

// RequireRole lets the request through when the caller holds one of roles.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential, ok := UserContextData(r)
			if !ok {
				utils.RespondError(w, http.StatusUnauthorized, nil, "not authenticated")
				return
			}
			for _, role := range roles {
				if credential.Roles == role {
					handler.ServeHTTP(w, r)
					return
				}
			}
			utils.RespondError(w, http.StatusForbidden, nil, "insufficient role")
		})
	}
}

func AdminMiddleware(handler http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)(handler)
}

func StaffMiddleware(handler http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin, model.RoleStaff)(handler)
}
