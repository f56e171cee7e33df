package model

import "time"

const (
	TableName  = "contact_messages"
	EntityName = "contact_message"

	FieldID        = "id"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
)

const (
	StatusUnread  = "unread"
	StatusRead    = "read"
	StatusReplied = "replied"
)

// ContactMessage has no updated_at column; status changes are not timestamped.
type ContactMessage struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Subject   *string   `db:"subject"`
	Message   string    `db:"message"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}
