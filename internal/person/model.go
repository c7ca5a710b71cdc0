package person

import "github.com/uptrace/bun"

type Person struct {
	bun.BaseModel `bun:"table:people,alias:p"`

	ID         int    `bun:"id,pk,autoincrement" json:"id"`
	FirstName  string `bun:"first_name,notnull" json:"firstName"`
	LastName   string `bun:"last_name,notnull" json:"lastName"`
	Email      string `bun:"email,notnull" json:"email"`
	Phone      string `bun:"phone,notnull" json:"phone"`
	Department string `bun:"department,notnull" json:"department"`
	Age        int    `bun:"age,notnull,default:0" json:"age"`
}

// Form carries the raw field values submitted from the add and update pages.
// The add path validates the whole struct at once; the update path checks
// each field independently.
type Form struct {
	FirstName  string `validate:"required,person_name"`
	LastName   string `validate:"required,person_name"`
	Email      string `validate:"required,loose_email"`
	Phone      string `validate:"required,phone_add"`
	Department string `validate:"required,department"`
	Age        string `validate:"omitempty,positive_int"`
}

// Event is published to the message bus whenever a person record changes.
type Event struct {
	Action string  `json:"action"`
	ID     int     `json:"id"`
	Person *Person `json:"person,omitempty"`
}

const (
	EventCreated = "person.created"
	EventUpdated = "person.updated"
	EventDeleted = "person.deleted"
)
