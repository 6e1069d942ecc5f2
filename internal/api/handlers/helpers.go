package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"

	"fintrack/pkg/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserID extracts the authenticated principal set by the JWT middleware.
// Every handler must resolve it first and pass it explicitly into queries and
// aggregations; nothing below the HTTP layer reads the session.
func UserID(r *http.Request) (int, bool) {
	idFloat, ok := r.Context().Value(utils.ContextKey("userId")).(float64)
	if !ok {
		return 0, false
	}
	return int(idFloat), true
}

func CheckBlankFields(value interface{}) error {
	val := reflect.ValueOf(value)
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Kind() == reflect.String && field.String() == "" {
			return errors.New("all fields are required")
		}
	}
	return nil
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
