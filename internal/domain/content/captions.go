package content

import (
	"strings"
	"unicode"
)

// Platform red social destino del caption.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformFacebook  Platform = "facebook"
)

// BusinessType rubro del negocio.
type BusinessType string

const (
	BusinessFood     BusinessType = "food"
	BusinessRetail   BusinessType = "retail"
	BusinessServices BusinessType = "services"
)

// Platforms y BusinessTypes enumeran el catálogo completo, en orden de presentación.
var (
	Platforms     = []Platform{PlatformInstagram, PlatformWhatsApp, PlatformFacebook}
	BusinessTypes = []BusinessType{BusinessFood, BusinessRetail, BusinessServices}
)

// ParsePlatform valida una plataforma.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if string(p) == s {
			return p, nil
		}
	}
	return "", &UnknownVariantError{Kind: "platform", Value: s}
}

// ParseBusinessType valida un tipo de negocio.
func ParseBusinessType(s string) (BusinessType, error) {
	for _, b := range BusinessTypes {
		if string(b) == s {
			return b, nil
		}
	}
	return "", &UnknownVariantError{Kind: "business type", Value: s}
}

// CaptionRequest entrada del generador de captions.
type CaptionRequest struct {
	Platform     Platform
	BusinessType BusinessType
	BusinessName string
	Product      string
}

type captionFunc func(product, business string) string

type captionKey struct {
	platform Platform
	business BusinessType
}

var captionCatalog = map[captionKey]captionFunc{
	{PlatformInstagram, BusinessFood}:     instagramFood,
	{PlatformInstagram, BusinessRetail}:   instagramRetail,
	{PlatformInstagram, BusinessServices}: instagramServices,
	{PlatformWhatsApp, BusinessFood}:      whatsappFood,
	{PlatformWhatsApp, BusinessRetail}:    whatsappRetail,
	{PlatformWhatsApp, BusinessServices}:  whatsappServices,
	{PlatformFacebook, BusinessFood}:      facebookFood,
	{PlatformFacebook, BusinessRetail}:    facebookRetail,
	{PlatformFacebook, BusinessServices}:  facebookServices,
}

// GenerateCaption produce el caption para la combinación plataforma × rubro.
// BusinessName y Product son obligatorios.
func GenerateCaption(req CaptionRequest) (string, error) {
	var missing []string
	if blank(req.BusinessName) {
		missing = append(missing, "business_name")
	}
	if blank(req.Product) {
		missing = append(missing, "product")
	}
	if len(missing) > 0 {
		return "", &ValidationError{Fields: missing}
	}
	if _, err := ParsePlatform(string(req.Platform)); err != nil {
		return "", err
	}
	if _, err := ParseBusinessType(string(req.BusinessType)); err != nil {
		return "", err
	}
	fn := captionCatalog[captionKey{req.Platform, req.BusinessType}]
	return fn(req.Product, req.BusinessName), nil
}

// Hashtag nombre del negocio sin espacios en blanco.
func Hashtag(business string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, business)
}

// ── Instagram ─────────────────────────────────────────────────────────────────

func instagramFood(product, business string) string {
	return "🍽️ Craving something delicious? " + business + " has got you covered!\n\n" +
		"Try our amazing " + product + " - made with love and the freshest ingredients! 🌟\n\n" +
		"Order now and taste the difference!\n\n" +
		"📍 Available for delivery\n🕐 Open daily\n\n" +
		"#KenyanFood #NairobiEats #FoodieKE #" + Hashtag(business) + " #LocalBusiness"
}

func instagramRetail(product, business string) string {
	return "✨ New arrival alert! ✨\n\n" +
		"Check out our " + product + " at " + business + "! Perfect for the modern you. 💫\n\n" +
		"Limited stock available - don't miss out!\n\n" +
		"💰 Affordable prices\n🚚 Delivery available\n\n" +
		"DM to order! 📩\n\n" +
		"#ShopLocal #KenyanBusiness #" + Hashtag(business) + " #NairobiShopping"
}

func instagramServices(product, business string) string {
	return "Looking for " + product + "? Look no further! 🙌\n\n" +
		business + " offers professional, reliable services that you can trust.\n\n" +
		"✅ Quality guaranteed\n✅ Affordable rates\n✅ Customer satisfaction first\n\n" +
		"Book your appointment today!\n\n" +
		"#KenyanServices #" + Hashtag(business) + " #ProfessionalServices"
}

// ── WhatsApp ──────────────────────────────────────────────────────────────────

func whatsappFood(product, business string) string {
	return "🍽️ *" + business + "*\n\n" +
		"Hungry? We've got the best " + product + " in town!\n\n" +
		"✅ Fresh ingredients\n✅ Fast delivery\n✅ Great prices\n\n" +
		"Order now via WhatsApp!\n\n" +
		"📞 Call/Text to order"
}

func whatsappRetail(product, business string) string {
	return "🛍️ *" + business + "*\n\n" +
		product + " now available!\n\n" +
		"💰 Best prices guaranteed\n🚚 Delivery to your doorstep\n💳 M-Pesa accepted\n\n" +
		"Message us to order!"
}

func whatsappServices(product, business string) string {
	return "👋 *" + business + "*\n\n" +
		"Need " + product + "?\n\n" +
		"We offer:\n✅ Professional service\n✅ Fair pricing\n✅ Reliable scheduling\n\n" +
		"Contact us today to book!"
}

// ── Facebook ──────────────────────────────────────────────────────────────────

func facebookFood(product, business string) string {
	return "😋 Who else loves good food?\n\n" +
		business + " is serving up the most delicious " + product + " you'll ever taste!\n\n" +
		"Why choose us?\n🌟 Made fresh daily\n🌟 Quality ingredients\n🌟 Affordable prices\n🌟 Fast delivery\n\n" +
		"Tag someone who needs to try this! 👇\n\n" +
		"Order now - Link in bio!"
}

func facebookRetail(product, business string) string {
	return "🛒 SHOP LOCAL, SUPPORT LOCAL! 🇰🇪\n\n" +
		business + " brings you amazing " + product + " at prices you'll love!\n\n" +
		"Why shop with us?\n✨ Quality products\n✨ Great customer service\n✨ Fast delivery\n✨ M-Pesa payment\n\n" +
		"Share with friends who'd love this! 💕"
}

func facebookServices(product, business string) string {
	return "Need reliable " + product + "? We've got you! 💪\n\n" +
		business + " is here to help with all your needs.\n\n" +
		"Our promise:\n🤝 Professional service\n⏰ Punctual delivery\n💯 Satisfaction guaranteed\n\n" +
		"Message us or call today!"
}
