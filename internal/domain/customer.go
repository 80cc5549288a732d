package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer owns zero or more accounts. It plays no part in transfer logic
// beyond ownership.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}
