package main

import (
	"crypto/tls"
	"net/http"
	"os"

	mw "fintrack/internal/api/middlewares"
	"fintrack/internal/api/routers"
	"fintrack/internal/repositories/sqlconnect"
	"fintrack/pkg/cron"
	"fintrack/pkg/utils"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	utils.InitLogger()

	if err := sqlconnect.ConnectDb(); err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}

	if err := sqlconnect.RunMigrations(); err != nil {
		utils.Logger.Fatal("DB migration failed: ", err)
	}

	scheduler := cron.StartCronJob(sqlconnect.DB)
	defer scheduler.Stop()

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = ":8080"
	}

	router := routers.MainRouter()
	jwtMiddleware := mw.MiddlewaresExcludePaths(mw.JWTMiddleware,
		"/users/signup",
		"/users/login",
		"/users/forgotpassword",
		"/users/resetpassword",
	)

	secureMux := jwtMiddleware(mw.SecurityHeaders(router))

	server := &http.Server{
		Addr:    port,
		Handler: secureMux,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	cert := os.Getenv("CERT_FILE")
	key := os.Getenv("KEY_FILE")

	utils.Logger.Info("Server is running on port ", port)

	var err error
	if cert != "" && key != "" {
		err = server.ListenAndServeTLS(cert, key)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil {
		utils.Logger.Fatal("Error starting the server: ", err)
	}
}
