package content

// Plan plan de suscripción ofrecido a cuentas gratuitas.
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular"`
}

// Plans devuelve una copia de los planes en orden de precio.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	for i, p := range plans {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}

var plans = []Plan{
	{
		ID:          "bronze",
		Name:        "Bronze (Basic)",
		Price:       "KES 500",
		Description: "Perfect for starting out",
		Features: []string{
			"Unlimited Invoices",
			"50 Business Messages/mo",
			"Basic Marketing Captions",
			"Email Support",
		},
	},
	{
		ID:          "silver",
		Name:        "Silver (Business)",
		Price:       "KES 1,500",
		Description: "Ideal for growing businesses",
		Popular:     true,
		Features: []string{
			"Everything in Bronze",
			"Unlimited Messages",
			"AI Marketing Assistant",
			"Priority WhatsApp Support",
			"Customer Dashboard",
		},
	},
	{
		ID:          "gold",
		Name:        "Gold (Enterprise)",
		Price:       "KES 3,500",
		Description: "Full suite for pros",
		Features: []string{
			"Everything in Silver",
			"Custom Branding",
			"Advanced AI Insights",
			"Dedicated Account Manager",
			"API Access",
		},
	},
}
