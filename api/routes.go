package main

import (
	"net/http"
)

func composeRoutes(app *application) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", app.healthCheckHandler)

	mux.HandleFunc("POST /auth/register", app.registerUserHandler)
	mux.HandleFunc("POST /auth/login", app.authenticateUserHandler)

	guard := app.requireAuthenticatedUser
	if app.config.publicItems {
		// explicit deployment mode: item routes served without authentication
		guard = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	mux.HandleFunc("GET /items", guard(app.getItemsHandler))
	mux.HandleFunc("POST /items", guard(app.createItemHandler))
	mux.HandleFunc("PUT /items/{id}", guard(app.updateItemHandler))
	mux.HandleFunc("DELETE /items/{id}", guard(app.deleteItemHandler))

	return app.enableCORS(mux)
}
