package main

import (
	"encoding/json"
	"errors"
	"regexp"
)

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

type validator struct {
	errors map[string]string
}

func newValidator() *validator {
	return &validator{
		errors: make(map[string]string),
	}
}

func (v *validator) toError() error {
	if v == nil {
		return errors.New("")
	}
	data, err := json.Marshal(v.errors)
	if err != nil {
		return err
	}
	return errors.New(string(data))
}

func (v *validator) hasErrors() bool {
	return len(v.errors) != 0
}

func (v *validator) checkCond(cond bool, key, msg string) {
	if cond {
		return
	}
	if _, ok := v.errors[key]; !ok {
		v.errors[key] = msg
	}
}

func (v *validator) checkUsername(username string) {
	v.checkCond(username != "", "username", "must be provided")
	v.checkCond(len(username) >= 3, "username", "must be atleast 3 characters long")
	v.checkCond(len(username) <= 50, "username", "must be atmost 50 characters long")
}

func (v *validator) checkPassword(password string) {
	v.checkCond(password != "", "password", "must be provided")
	v.checkCond(len(password) >= 6, "password", "must be atleast 6 characters long")
	v.checkCond(len(password) <= 72, "password", "must be atmost 72 characters long")
}

func (v *validator) checkItemName(name string) {
	v.checkCond(name != "", "name", "must be provided")
	v.checkCond(len(name) <= 255, "name", "must be atmost 255 characters")
}
