package handlers

import (
	"net/http"
	"strconv"

	"github.com/GGmuzem/showcase-api/internal/stringx"
	"github.com/GGmuzem/showcase-api/pkg/models"
	"github.com/gorilla/mux"
)

// PersonHandler обрабатывает GET /person/{name}/{age}
func (h *Handler) PersonHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	if stringx.IsBlank(name) {
		h.handleError(w, r, &models.ValidationError{Field: "name", Message: "name must not be empty"})
		return
	}

	age, err := strconv.Atoi(vars["age"])
	if err != nil {
		h.handleError(w, r, &models.ValidationError{Field: "age", Message: "age must be an integer"})
		return
	}

	person, err := models.NewPerson(name, age)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(h.log, w, http.StatusOK, person)
}

// EmployeesHandler обрабатывает GET /employees
func (h *Handler) EmployeesHandler(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.ListEmployees(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(h.log, w, http.StatusOK, employees)
}
