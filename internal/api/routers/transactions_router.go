package routers

import (
	"net/http"

	"fintrack/internal/api/handlers/transactions"
)

func transactionsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /transactions", transactions.ListTransactionsHandler)
	mux.HandleFunc("POST /transactions", transactions.CreateTransactionHandler)

	mux.HandleFunc("GET /transactions/{id}", transactions.GetTransactionByIdHandler)
	mux.HandleFunc("PUT /transactions/{id}", transactions.UpdateTransactionHandler)
	mux.HandleFunc("DELETE /transactions/{id}", transactions.DeleteTransactionHandler)

	return mux
}
