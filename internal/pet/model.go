package pet

import "github.com/google/uuid"

// Pet is a named animal owned by exactly one user.
type Pet struct {
	ID      int64     `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	PetName string    `json:"pet_name"`
}

// MaxNameLength is the longest pet name, in characters, the store accepts.
const MaxNameLength = 50
