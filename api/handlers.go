package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
)

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	healthCheck := struct {
		Status      string    `json:"status"`
		Environment string    `json:"environment"`
		Version     string    `json:"version"`
		Timestamp   time.Time `json:"timestamp"`
	}{
		Status:      "available",
		Environment: app.config.env,
		Version:     version,
		Timestamp:   time.Now().UTC(),
	}
	writeJSON(w, http.StatusOK, healthCheck)
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

func newAuthResponse(token string, u *user) authResponse {
	var res authResponse
	res.Token = token
	res.User.ID = u.ID
	res.User.Username = u.Username
	return res
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	v := newValidator()
	v.checkUsername(input.Username)
	v.checkPassword(input.Password)
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	u := &user{
		Username:     input.Username,
		PasswordHash: hash,
	}
	err = app.storage.insertUser(r.Context(), u)
	if err != nil {
		switch {
		case errors.Is(err, errDuplicateUsername):
			writeError(w, errDuplicateUsername, http.StatusBadRequest)
		default:
			log.Println(err)
			writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		}
		return
	}

	token, err := issueToken(u, app.config.jwt)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}

	// usernames are free-form; only email-shaped ones are reachable by mail
	if app.mailer != nil && emailRegexp.MatchString(u.Username) {
		go func() {
			err := app.mailer.sendWelcome(u)
			if err != nil {
				log.Println(err)
			}
		}()
	}

	writeJSON(w, http.StatusOK, newAuthResponse(token, u))
}

func (app *application) authenticateUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	u, err := app.storage.getUserByUsername(r.Context(), input.Username)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	// same response for unknown user and wrong password
	if u == nil || !verifyPassword(input.Password, u.PasswordHash) {
		writeError(w, errors.New("invalid credentials"), http.StatusUnauthorized)
		return
	}

	token, err := issueToken(u, app.config.jwt)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, newAuthResponse(token, u))
}

func (app *application) getItemsHandler(w http.ResponseWriter, r *http.Request) {
	items, err := app.storage.getItems(r.Context())
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (app *application) createItemHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name       string `json:"name"`
		IsComplete bool   `json:"isComplete"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	v := newValidator()
	v.checkItemName(input.Name)
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}

	i := &item{
		Name:       input.Name,
		IsComplete: input.IsComplete,
	}
	err = app.storage.insertItem(r.Context(), i)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/items/%d", i.ID))
	writeJSON(w, http.StatusCreated, i)
}

func (app *application) updateItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, errors.New("item not found"), http.StatusNotFound)
		return
	}
	var input struct {
		Name       string `json:"name"`
		IsComplete bool   `json:"isComplete"`
	}
	err = json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	v := newValidator()
	v.checkItemName(input.Name)
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}

	// full replace: both fields come from the request body
	i := &item{
		ID:         id,
		Name:       input.Name,
		IsComplete: input.IsComplete,
	}
	found, err := app.storage.updateItem(r.Context(), i)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	if !found {
		writeError(w, errors.New("item not found"), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, i)
}

func (app *application) deleteItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, errors.New("item not found"), http.StatusNotFound)
		return
	}
	found, err := app.storage.deleteItem(r.Context(), id)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	if !found {
		writeError(w, errors.New("item not found"), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data)
}

func composeJSONError(err error) string {
	jsonError := map[string]string{
		"error": err.Error(),
	}
	result, err := json.Marshal(jsonError)
	if err != nil {
		log.Println(err)
		return ""
	}
	return string(result)
}

func writeError(w http.ResponseWriter, err error, statusCode int) {
	h := w.Header()
	h.Del("Content-Length")
	h.Set("Content-Type", "application/json")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	fmt.Fprintln(w, composeJSONError(err))
}
