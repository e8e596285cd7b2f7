package models

import "ticketpro/src/types"

type User struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     types.Role `json:"role"`
}
