package database

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User maps the user_model table.
type User struct {
	bun.BaseModel `bun:"table:user_model,alias:u"`

	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	Email          string    `bun:"email,notnull,unique"`
	HashedPassword string    `bun:"hashed_password,notnull"`

	Pets []*Pet `bun:"rel:has-many,join:id=user_id"`
}

// Pet maps the pets table. Rows are removed with their owner (ON DELETE CASCADE).
type Pet struct {
	bun.BaseModel `bun:"table:pets,alias:p"`

	ID      int64     `bun:"id,pk,autoincrement"`
	UserID  uuid.UUID `bun:"user_id,notnull,type:uuid"`
	PetName string    `bun:"pet_name,notnull"`
}
