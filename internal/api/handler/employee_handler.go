package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/admin-api/internal/core/domain"
	"github.com/staffdesk/admin-api/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee management.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List handles GET /v1/employees.
//
// @Summary      List employees
// @Description  Returns one page of the filtered, sorted employee list. Admin only.
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Substring match on name, email, emp_id and department"
// @Param        sort    query     string  false  "Sort column (name, email, emp_id, department, created_at)"
// @Param        order   query     string  false  "Sort order (asc, desc)"
// @Param        page    query     int     false  "1-based page number"
// @Success      200     {object}  listEmployeesResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /v1/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	role, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := h.service.ListEmployees(c.Request().Context(), ports.ListEmployeesInput{
		ActorRole:  role,
		Search:     c.QueryParam("search"),
		SortColumn: c.QueryParam("sort"),
		SortOrder:  c.QueryParam("order"),
		Page:       page,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
		}
		return err
	}

	data := make([]employeeResponse, 0, len(result.Items))
	for i := range result.Items {
		data = append(data, *toEmployeeResponse(&result.Items[i]))
	}

	return c.JSON(http.StatusOK, listEmployeesResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			PageSize:   result.PageSize,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /v1/employees/:id.
//
// @Summary      Get an employee by id
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee row id"
// @Success      200  {object}  employeeResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	if _, _, err := ctxActor(c); err != nil {
		return err
	}

	employee, err := h.service.GetEmployee(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "employee not found"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Create handles POST /v1/employees.
//
// @Summary      Create an employee
// @Description  Inserts the record and provisions its document folder in object storage.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "New employee details"
// @Success      201   {object}  employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	if _, _, err := ctxActor(c); err != nil {
		return err
	}

	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	employee, err := h.service.CreateEmployee(c.Request().Context(), ports.CreateEmployeeInput{
		EmpID:      req.EmpID,
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "employee already exists"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		if errors.Is(err, domain.ErrFolderProvision) {
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, toEmployeeResponse(employee))
}

// Update handles PUT /v1/employees/:id.
//
// @Summary      Update an employee
// @Description  Applies a partial patch; absent fields stay unchanged.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Employee row id"
// @Param        body  body      updateEmployeeRequest  true  "Fields to update"
// @Success      200   {object}  employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	_, email, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	employee, err := h.service.UpdateEmployee(c.Request().Context(), ports.UpdateEmployeeInput{
		ID:         c.Param("id"),
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		ActorEmail: email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "employee not found"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Delete handles DELETE /v1/employees/:id.
//
// @Summary      Delete an employee
// @Description  Removes the record; the document folder is left in place.
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Employee row id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	if _, _, err := ctxActor(c); err != nil {
		return err
	}

	if err := h.service.DeleteEmployee(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "employee not found"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
