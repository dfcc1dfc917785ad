package entity

import "time"

// Categorías de plantillas de mensaje.
const (
	MessageCategoryMarketing = "MARKETING"
	MessageCategoryReminder  = "REMINDER"
	MessageCategoryFollowUp  = "FOLLOWUP"
)

// ValidMessageCategory informa si c es una categoría conocida.
func ValidMessageCategory(c string) bool {
	switch c {
	case MessageCategoryMarketing, MessageCategoryReminder, MessageCategoryFollowUp:
		return true
	}
	return false
}

// MessageTemplate mensaje generado y guardado en la biblioteca del usuario.
type MessageTemplate struct {
	ID             string
	UserID         string
	Title          string
	Content        string
	Category       string
	IdempotencyKey string
	RequestHash    string
	CreatedAt      time.Time
}
