package domain

import "time"

type User struct {
	ID           uint64
	Username     string
	Name         string
	IsAdmin      bool
	PasswordHash string
	DateJoined   time.Time
}

type CreateUserInput struct {
	Username string
	Name     string
	Password string
	IsAdmin  bool
}

type Comment struct {
	ID         uint64
	TaskID     uint64
	AuthorID   uint64
	AuthorName string
	Content    string
	CreatedAt  time.Time
}

// Assignment is one row of the task/user many-to-many relation.
type Assignment struct {
	TaskID uint64
	User   User
}
