package user

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"
)

type Role string

const (
	RoleManagingDirector Role = "MANAGING_DIRECTOR" // Full access, finance included
	RoleProjectManager   Role = "PROJECT_MANAGER"   // Manages projects and their teams
	RoleEmployee         Role = "EMPLOYEE"          // Works on assigned projects
)

// ParseRole validates a role string. Unknown values are rejected.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleManagingDirector, RoleProjectManager, RoleEmployee:
		return r, nil
	default:
		return "", apperror.Wrap(apperror.ErrInvalidInput, fmt.Sprintf("unknown role %q", s), nil)
	}
}

// Identity is the currently authenticated actor as reported by the identity provider.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

// IsManagingDirector checks if the identity runs the company
func (i *Identity) IsManagingDirector() bool {
	return i.Role == RoleManagingDirector
}

// IsProjectManager checks if the identity is a project manager
func (i *Identity) IsProjectManager() bool {
	return i.Role == RoleProjectManager
}

// IsEmployee checks if the identity is a regular employee
func (i *Identity) IsEmployee() bool {
	return i.Role == RoleEmployee
}

// CanManageProjects checks if the identity may create or edit projects
func (i *Identity) CanManageProjects() bool {
	return i.IsManagingDirector() || i.IsProjectManager()
}

// CanManageFinance checks if the identity may see and edit invoices and salaries
func (i *Identity) CanManageFinance() bool {
	return i.IsManagingDirector()
}
