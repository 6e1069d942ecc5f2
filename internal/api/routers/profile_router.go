package routers

import (
	"net/http"

	"fintrack/internal/api/handlers/profile"
)

func profileRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /profile", profile.GetProfileHandler)
	mux.HandleFunc("DELETE /profile", profile.DeleteAccountHandler)

	mux.HandleFunc("PUT /profile/basic", profile.UpdateBasicHandler)
	mux.HandleFunc("PUT /profile/email", profile.UpdateEmailHandler)
	mux.HandleFunc("PUT /profile/password", profile.UpdatePasswordHandler)

	return mux
}
