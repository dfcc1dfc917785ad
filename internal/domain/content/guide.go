package content

// RegistrationStep paso de la guía de registro de negocios en Kenia.
type RegistrationStep struct {
	Number      int      `json:"number"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
	Link        string   `json:"link,omitempty"`
	Fees        string   `json:"fees,omitempty"`
}

// RegistrationGuide devuelve una copia de los pasos, en orden.
func RegistrationGuide() []RegistrationStep {
	out := make([]RegistrationStep, len(registrationSteps))
	for i, s := range registrationSteps {
		s.Details = append([]string(nil), s.Details...)
		out[i] = s
	}
	return out
}

var registrationSteps = []RegistrationStep{
	{
		Number:      1,
		Title:       "Reserve Your Business Name",
		Description: "Visit the eCitizen portal and search for your desired business name. If available, reserve it for 30 days.",
		Details: []string{
			"Go to ecitizen.go.ke and create an account",
			"Navigate to Business Registration services",
			"Search to check if your name is available",
			"Pay KES 150 to reserve the name",
		},
		Link: "https://www.ecitizen.go.ke",
	},
	{
		Number:      2,
		Title:       "Register Your Business",
		Description: "Choose your business type and complete the registration process online.",
		Details: []string{
			"Sole Proprietorship - for individual owners",
			"Partnership - for 2+ people in business together",
			"Limited Company - for larger businesses",
			"Fill in required details and upload documents",
		},
		Fees: "KES 950 - 10,000 depending on type",
	},
	{
		Number:      3,
		Title:       "Get Your KRA PIN",
		Description: "Register with Kenya Revenue Authority to get your tax PIN for your business.",
		Details: []string{
			"Visit itax.kra.go.ke",
			"Apply for a business PIN",
			"Link it to your personal PIN",
			"Download your PIN certificate",
		},
		Link: "https://itax.kra.go.ke",
	},
	{
		Number:      4,
		Title:       "Apply for Business Permits",
		Description: "Get the necessary permits from your county government to operate legally.",
		Details: []string{
			"Single Business Permit from your county",
			"Health certificates if handling food",
			"Fire safety certificate if needed",
			"Display your permits at your business location",
		},
		Fees: "Varies by county and business type",
	},
	{
		Number:      5,
		Title:       "Open a Business Bank Account",
		Description: "Set up a separate bank account for your business transactions.",
		Details: []string{
			"Choose a bank with good SME services",
			"Bring your business registration certificate",
			"Bring your KRA PIN certificate",
			"Bring your ID and passport photos",
		},
	},
}
