package routers

import (
	"net/http"
)

func MainRouter() *http.ServeMux {

	mux := http.NewServeMux()

	uRouter := usersRouter()
	mux.Handle("/users/", uRouter)

	tRouter := transactionsRouter()
	mux.Handle("/transactions", tRouter)
	mux.Handle("/transactions/", tRouter)

	dRouter := dashboardRouter()
	mux.Handle("/dashboard", dRouter)
	mux.Handle("/dashboard/", dRouter)

	pRouter := profileRouter()
	mux.Handle("/profile", pRouter)
	mux.Handle("/profile/", pRouter)

	return mux
}
