package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"

	"plant_nursery/model"
	"plant_nursery/utils"
)

var (
	secretMu  sync.RWMutex
	secretKey []byte
	tokenTTL  = 24 * time.Hour
)

type Claims struct {
	Credential model.UserCredential `json:"credential"`
	jwt.StandardClaims
}

// Configure sets the signing key and lifetime of issued tokens.
func Configure(secret string, ttl time.Duration) {
	secretMu.Lock()
	defer secretMu.Unlock()
	secretKey = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

func signingKey() []byte {
	secretMu.RLock()
	defer secretMu.RUnlock()
	return secretKey
}

// GenerateJWT is used to generate the JWT token
func GenerateJWT(userId string, role model.Role) (string, error) {
	secretMu.RLock()
	ttl := tokenTTL
	secretMu.RUnlock()

	claims := Claims{
		Credential: model.UserCredential{Id: userId, Roles: role},
		StandardClaims: jwt.StandardClaims{
			Subject:   userId,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(signingKey())
	if err != nil {
		logrus.Errorf("GenerateJWT: failed to sign token err = %v", err)
		return "", err
	}
	return tokenString, nil
}

// ParseJWT validates the token and returns the credential it carries.
func ParseJWT(tokenString string) (model.UserCredential, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return signingKey(), nil
	})
	if err != nil {
		return model.UserCredential{}, err
	}
	if !token.Valid || claims.Credential.Id == "" {
		return model.UserCredential{}, errors.New("invalid token")
	}
	return claims.Credential, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token := strings.TrimPrefix(header, "Bearer "); token != header {
		return strings.TrimSpace(token)
	}
	return strings.TrimSpace(header)
}

func AuthMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userToken := bearerToken(r)
		if userToken == "" {
			utils.RespondError(w, http.StatusUnauthorized, nil, "missing authorization token")
			return
		}
		credential, err := ParseJWT(userToken)
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, err, "invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), UserContext, credential)
		handler.ServeHTTP(w, r.WithContext(ctx))
	})
}
