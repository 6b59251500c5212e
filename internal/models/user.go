package models

import "github.com/google/uuid"

const (
	StudentRole   = "student"
	ModeratorRole = "moderator"
)

type User struct {
	ID       uuid.UUID
	Username string
	Password string
	Email    string
	Roles    []string
}
