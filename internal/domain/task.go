package domain

import "time"

// Task is a unit of work owned by one or more users.
type Task struct {
	ID          int64
	Description string
	CreatedAt   time.Time
	Owners      []int64
}

// Request is a solicitation raised by a single user.
type Request struct {
	ID          int64
	Description string
	SolicitorID int64
	CreatedAt   time.Time
}
