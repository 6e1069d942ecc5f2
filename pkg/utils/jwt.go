package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errJWTSecretMissing = errors.New("jwt secret missing")

// SignToken issues an HS256 session token for the given user.
func SignToken(userID int, email string) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", ErrorHandler(errJWTSecretMissing, "JWT_SECRET is not set")
	}

	hours, err := strconv.Atoi(os.Getenv("JWT_EXPIRES_IN_HOURS"))
	if err != nil || hours <= 0 {
		hours = 24
	}

	claims := jwt.MapClaims{
		"uid":  userID,
		"user": email,
		"exp":  time.Now().Add(time.Duration(hours) * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", ErrorHandler(err, "failed to sign token")
	}

	return tokenString, nil
}
