package messaging

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/domain/content"
)

// GenerateMessage corre el catálogo de mensajes y agrega el enlace de WhatsApp,
// el título y la categoría con que se guardaría.
func GenerateMessage(in dto.GenerateMessageRequest) (*dto.GeneratedTextResponse, error) {
	kind, err := content.ParseMessageType(in.MessageType)
	if err != nil {
		return nil, err
	}
	tone, err := content.ParseTone(in.Tone)
	if err != nil {
		return nil, err
	}
	text, err := content.GenerateMessage(content.MessageRequest{
		Type:       kind,
		Tone:       tone,
		ClientName: in.ClientName,
		Amount:     in.Amount,
	})
	if err != nil {
		return nil, err
	}
	return &dto.GeneratedTextResponse{
		Text:     text,
		ShareURL: content.WhatsAppShareURL(text),
		Title:    kind.SavedTitle(in.ClientName),
		Category: kind.Category(),
	}, nil
}

// GenerateCaption corre el catálogo de captions.
func GenerateCaption(in dto.GenerateCaptionRequest) (*dto.GeneratedTextResponse, error) {
	platform, err := content.ParsePlatform(in.Platform)
	if err != nil {
		return nil, err
	}
	business, err := content.ParseBusinessType(in.BusinessType)
	if err != nil {
		return nil, err
	}
	text, err := content.GenerateCaption(content.CaptionRequest{
		Platform:     platform,
		BusinessType: business,
		BusinessName: in.BusinessName,
		Product:      in.Product,
	})
	if err != nil {
		return nil, err
	}
	return &dto.GeneratedTextResponse{
		Text:     text,
		ShareURL: content.WhatsAppShareURL(text),
	}, nil
}

// SaveRequest plantilla a guardar a partir de un mensaje generado.
func SaveRequest(gen *dto.GeneratedTextResponse) dto.CreateMessageTemplateRequest {
	return dto.CreateMessageTemplateRequest{
		Title:    gen.Title,
		Content:  gen.Text,
		Category: gen.Category,
	}
}

// MessageSubmissionKey clave de envío de un mensaje dentro de una generación:
// reintentos de la misma generación se guardan una sola vez, una generación
// nueva con el mismo texto se guarda otra vez.
func MessageSubmissionKey(generationID, title, text string) string {
	sum := sha256.Sum256([]byte(generationID + "\x00" + title + "\x00" + text))
	return "message:" + hex.EncodeToString(sum[:8])
}
