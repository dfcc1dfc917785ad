package dto

import "time"

// CreateMessageTemplateRequest body para POST /api/messages/.
type CreateMessageTemplateRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required,oneof=MARKETING REMINDER FOLLOWUP"`
}

// MessageTemplateResponse plantilla guardada.
type MessageTemplateResponse struct {
	ID        FlexibleID `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Category  string     `json:"category"`
	CreatedAt time.Time  `json:"created_at"`
}

// GenerateMessageRequest body para POST /api/content/messages/.
// Los campos obligatorios los valida el catálogo de plantillas.
type GenerateMessageRequest struct {
	MessageType string `json:"message_type"`
	Tone        string `json:"tone"`
	ClientName  string `json:"client_name"`
	Amount      string `json:"amount,omitempty"`
}

// GenerateCaptionRequest body para POST /api/content/captions/.
type GenerateCaptionRequest struct {
	Platform     string `json:"platform"`
	BusinessType string `json:"business_type"`
	BusinessName string `json:"business_name"`
	Product      string `json:"product"`
}

// GeneratedTextResponse texto generado más el enlace para compartir por WhatsApp.
// Title y Category solo vienen para mensajes (valores sugeridos para guardarlo).
type GeneratedTextResponse struct {
	Text     string `json:"text"`
	ShareURL string `json:"share_url"`
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
}
