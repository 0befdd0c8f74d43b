package models

// Person represents one registered contact.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	// Empty until the store persists the record.
	ID string

	// Name is the display name. Unique together with Phone.
	Name string

	// Phone is the masked phone number, e.g. "(51) 99988-7766".
	Phone string

	// CreatedAt is the Unix timestamp when the person was first stored.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last upsert.
	UpdatedAt int64
}
