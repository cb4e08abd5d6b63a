package domain

// Button is a quick-action chip rendered under a bot message. Clicking it
// sends Value back as a regular user message.
type Button struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Option is a selectable list entry in a bot message.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FormField describes one input in a contact-capture form.
type FormField struct {
	Label    string `json:"label"`
	Name     string `json:"name"`
	Type     string `json:"type"` // "text" | "email" | "tel" | "textarea"
	Required bool   `json:"required"`
}

// Form is a client-rendered form attached to a bot message.
type Form struct {
	Fields      []FormField `json:"fields"`
	SubmitLabel string      `json:"submitLabel,omitempty"`
}

// Reply is the structured bot-side message shape shared by the canned
// content catalog and the automated responder.
type Reply struct {
	Message string   `json:"message"`
	Buttons []Button `json:"buttons,omitempty"`
	Options []Option `json:"options,omitempty"`
	Form    *Form    `json:"form,omitempty"`
}
