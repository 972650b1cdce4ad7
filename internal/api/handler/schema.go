package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=admin user"`
	Status   string `json:"status"   validate:"required,oneof=active inactive"`
}

// updateUserRequest carries the edit form's full field set. An empty
// password means "leave unchanged".
type updateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"required,oneof=admin user"`
	Status   string `json:"status"   validate:"required,oneof=active inactive"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

type createEmployeeRequest struct {
	EmpID      string `json:"emp_id"     validate:"required"`
	Name       string `json:"name"       validate:"required"`
	Email      string `json:"email"      validate:"omitempty,email"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// updateEmployeeRequest is a partial patch: absent fields stay unchanged.
type updateEmployeeRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

type createBucketRequest struct {
	Name string `json:"name" validate:"required"`
}

// --- Response types ---
// Owned by the transport layer, intentionally separate from domain types so
// the JSON contract is not coupled to internal service changes.

type userResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

type employeeResponse struct {
	UserID     string    `json:"user_id"`
	EmpID      string    `json:"emp_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Department string    `json:"department,omitempty"`
	Position   string    `json:"position,omitempty"`
	Folder     string    `json:"folder"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UpdatedBy  string    `json:"updated_by,omitempty"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

type paginationResponse struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

type listUsersResponse struct {
	Data       []userResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type listEmployeesResponse struct {
	Data       []employeeResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type createBucketResponse struct {
	Name string `json:"name"`
}
