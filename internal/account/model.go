package account

import "time"

// Status is the lifecycle state of an account.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusClosed Status = "CLOSED"
)

// Account is a user-owned balance holder addressed by its account number.
// Balance is in the smallest currency unit and never negative.
type Account struct {
	ID           int64
	Number       string
	UserID       int64
	Status       Status
	Balance      int64
	RegisteredAt time.Time
	ClosedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
