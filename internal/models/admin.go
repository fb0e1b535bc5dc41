package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleClient     = "client"
)

// Admin is a staff account (admin or technician).
type Admin struct {
	ID        AdminID `json:"id"`
	Username  string  `json:"username"`
	Password  string  `json:"password,omitempty"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Active    bool    `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a Admin) Public() Admin {
	a.Password = ""
	return a
}
