package handler

import "github.com/staffdesk/admin-api/internal/core/domain"

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		UpdatedBy: u.UpdatedBy,
	}
}

func toEmployeeResponse(e *domain.Employee) *employeeResponse {
	if e == nil {
		return nil
	}
	return &employeeResponse{
		UserID:     e.UserID,
		EmpID:      e.EmpID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Folder:     e.FolderName(),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		UpdatedBy:  e.UpdatedBy,
	}
}
