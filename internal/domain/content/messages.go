package content

import "github.com/jhoicas/mtaabiz/internal/domain/entity"

// MessageType tipo de mensaje de negocio.
type MessageType string

const (
	MessagePaymentReminder MessageType = "payment-reminder"
	MessageFollowUp        MessageType = "follow-up"
	MessageThankYou        MessageType = "thank-you"
)

// Tone registro del mensaje.
type Tone string

const (
	TonePolite   Tone = "polite"
	ToneFriendly Tone = "friendly"
)

// DefaultAmount texto usado cuando no se indica monto.
const DefaultAmount = "the agreed amount"

var (
	MessageTypes = []MessageType{MessagePaymentReminder, MessageFollowUp, MessageThankYou}
	Tones        = []Tone{TonePolite, ToneFriendly}
)

// ParseMessageType valida un tipo de mensaje.
func ParseMessageType(s string) (MessageType, error) {
	for _, m := range MessageTypes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", &UnknownVariantError{Kind: "message type", Value: s}
}

// ParseTone valida un tono.
func ParseTone(s string) (Tone, error) {
	for _, t := range Tones {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &UnknownVariantError{Kind: "tone", Value: s}
}

// Category categoría con la que se guarda en la biblioteca.
func (m MessageType) Category() string {
	switch m {
	case MessagePaymentReminder:
		return entity.MessageCategoryReminder
	case MessageFollowUp:
		return entity.MessageCategoryFollowUp
	default:
		return entity.MessageCategoryMarketing
	}
}

// SavedTitle título de la plantilla guardada: "{tipo} for {cliente}".
func (m MessageType) SavedTitle(clientName string) string {
	return string(m) + " for " + clientName
}

// MessageRequest entrada del generador de mensajes.
type MessageRequest struct {
	Type       MessageType
	Tone       Tone
	ClientName string
	Amount     string // opcional
}

type messageFunc func(name, amount string) string

type messageKey struct {
	kind MessageType
	tone Tone
}

var messageCatalog = map[messageKey]messageFunc{
	{MessagePaymentReminder, TonePolite}:   paymentReminderPolite,
	{MessagePaymentReminder, ToneFriendly}: paymentReminderFriendly,
	{MessageFollowUp, TonePolite}:          followUpPolite,
	{MessageFollowUp, ToneFriendly}:        followUpFriendly,
	{MessageThankYou, TonePolite}:          thankYouPolite,
	{MessageThankYou, ToneFriendly}:        thankYouFriendly,
}

// GenerateMessage produce el mensaje para tipo × tono. ClientName es obligatorio;
// un Amount vacío se reemplaza por DefaultAmount.
func GenerateMessage(req MessageRequest) (string, error) {
	if blank(req.ClientName) {
		return "", &ValidationError{Fields: []string{"client_name"}}
	}
	if _, err := ParseMessageType(string(req.Type)); err != nil {
		return "", err
	}
	if _, err := ParseTone(string(req.Tone)); err != nil {
		return "", err
	}
	amount := req.Amount
	if amount == "" {
		amount = DefaultAmount
	}
	fn := messageCatalog[messageKey{req.Type, req.Tone}]
	return fn(req.ClientName, amount), nil
}

func paymentReminderPolite(name, amount string) string {
	return "Dear " + name + ",\n\n" +
		"I hope this message finds you well. This is a gentle reminder regarding the outstanding payment of " + amount + " for services rendered.\n\n" +
		"Kindly arrange for the payment at your earliest convenience. Please let me know if you have any questions.\n\n" +
		"Thank you for your continued partnership.\n\n" +
		"Best regards"
}

func paymentReminderFriendly(name, amount string) string {
	return "Hi " + name + "! 👋\n\n" +
		"Just a quick heads up - there's an outstanding balance of " + amount + " on your account.\n\n" +
		"No rush, but if you could sort it out when you get a chance, that would be great! Let me know if anything's unclear.\n\n" +
		"Cheers!"
}

func followUpPolite(name, _ string) string {
	return "Dear " + name + ",\n\n" +
		"I wanted to follow up on our recent discussion and check if you had any questions or needed additional information.\n\n" +
		"Please don't hesitate to reach out if there's anything I can assist you with.\n\n" +
		"Looking forward to hearing from you.\n\n" +
		"Best regards"
}

func followUpFriendly(name, _ string) string {
	return "Hey " + name + "! 👋\n\n" +
		"Just checking in to see how things are going! Wanted to follow up on our last chat.\n\n" +
		"Any questions? I'm here to help!\n\n" +
		"Talk soon!"
}

func thankYouPolite(name, _ string) string {
	return "Dear " + name + ",\n\n" +
		"Thank you for your recent business. We truly appreciate your trust in our services.\n\n" +
		"We look forward to serving you again and building a lasting partnership.\n\n" +
		"With gratitude,"
}

func thankYouFriendly(name, _ string) string {
	return "Hey " + name + "! 🙏\n\n" +
		"Just wanted to say a huge THANK YOU for your business! You're awesome!\n\n" +
		"Can't wait to work with you again. You know where to find me!\n\n" +
		"Cheers!"
}
