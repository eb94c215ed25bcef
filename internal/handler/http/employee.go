package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workspace-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	directoryService directory.DirectoryService
	identity         user.IdentityProvider
}

func NewEmployeeHandler(directoryService directory.DirectoryService, identity user.IdentityProvider) EmployeeHandler {
	return &employeeHandlerImpl{
		directoryService: directoryService,
		identity:         identity,
	}
}

// canSeeSalary reports whether the caller may see salaries.
func (h *employeeHandlerImpl) canSeeSalary(r *http.Request) bool {
	identity, err := h.identity.CurrentUser(r.Context())
	return err == nil && identity != nil && identity.CanManageFinance()
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.directoryService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	withSalary := h.canSeeSalary(r)
	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, employee.ToResponse(emp, withSalary))
	}

	response.SuccessWithMeta(w, result, listMeta(len(result)))
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	emp, err := h.directoryService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToResponse(emp, h.canSeeSalary(r)))
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.directoryService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", employee.ToResponse(created, true))
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req employee.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.directoryService.UpdateEmployee(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", employee.ToResponse(updated, true))
}

// DeleteEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if err := h.directoryService.DeleteEmployee(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}
