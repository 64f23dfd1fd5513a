package identity

import "time"

// User owns accounts. Users are provisioned outside this service.
type User struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
