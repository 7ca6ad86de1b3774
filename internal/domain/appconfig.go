/**
 * @description
 * Static per-app configuration registry. Each entry describes one of the demo
 * apps: branding, paywall threshold, model selection, and form schema. Pure
 * data with no behavior; the credit gate and the assistant handler read it.
 */

package domain

// FormField describes one input in an app's request form.
type FormField struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Kind        string `json:"kind"` // "text", "textarea", "file", "select"
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder,omitempty"`
}

// AppConfig describes a single demo app.
type AppConfig struct {
	Slug             string      `json:"slug"`
	Name             string      `json:"name"`
	Tagline          string      `json:"tagline"`
	Model            string      `json:"model"`
	AllowWebBrowsing bool        `json:"allow_web_browsing"`
	FreeUses         int         `json:"free_uses"` // paywall threshold before credits are charged
	Fields           []FormField `json:"fields"`
}

// FreeModels is the allow-list of model identifiers that never cost credits
// when no premium capability is requested.
var FreeModels = []string{
	"gemini-1.5-flash",
	"gemini-2.0-flash",
}

// IsFreeModel reports whether model is on the zero-cost allow-list.
func IsFreeModel(model string) bool {
	for _, m := range FreeModels {
		if m == model {
			return true
		}
	}
	return false
}

// Apps is the registry of demo apps, keyed by slug.
var Apps = map[string]AppConfig{
	"chat": {
		Slug:     "chat",
		Name:     "Scout Chat",
		Tagline:  "Ask anything about your prospects.",
		Model:    "gemini-1.5-flash",
		FreeUses: 10,
		Fields: []FormField{
			{Name: "message", Label: "Message", Kind: "textarea", Required: true},
		},
	},
	"pdf-qa": {
		Slug:     "pdf-qa",
		Name:     "PDF Q&A",
		Tagline:  "Upload a document, ask questions.",
		Model:    "gemini-1.5-pro",
		FreeUses: 3,
		Fields: []FormField{
			{Name: "file", Label: "Document", Kind: "file", Required: true},
			{Name: "question", Label: "Question", Kind: "text", Required: true},
		},
	},
	"text-to-speech": {
		Slug:     "text-to-speech",
		Name:     "Voice Studio",
		Tagline:  "Turn outreach copy into audio.",
		Model:    "eleven_multilingual_v2",
		FreeUses: 3,
		Fields: []FormField{
			{Name: "text", Label: "Text", Kind: "textarea", Required: true},
			{Name: "voice_id", Label: "Voice", Kind: "select", Required: true},
		},
	},
	"image-description": {
		Slug:     "image-description",
		Name:     "Image Describe",
		Tagline:  "Describe any image in seconds.",
		Model:    "gemini-1.5-pro",
		FreeUses: 5,
		Fields: []FormField{
			{Name: "file", Label: "Image", Kind: "file", Required: true},
		},
	},
}
