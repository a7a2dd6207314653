// Package language defines the set of languages the assistant serves and
// helpers for normalizing and labeling language codes.
package language

import "strings"

// Supported lists the language codes the service translates into, source
// language first.
var Supported = []string{"en", "hi", "mr", "gu", "pa", "ta", "te"}

// Language describes one supported language for API consumers.
type Language struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
}

// All returns the supported languages with their English and native names.
func All() []Language {
	return []Language{
		{ID: "en", Name: "English", NativeName: "English"},
		{ID: "hi", Name: "Hindi", NativeName: "हिन्दी"},
		{ID: "mr", Name: "Marathi", NativeName: "मराठी"},
		{ID: "gu", Name: "Gujarati", NativeName: "ગુજરાતી"},
		{ID: "pa", Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ"},
		{ID: "ta", Name: "Tamil", NativeName: "தமிழ்"},
		{ID: "te", Name: "Telugu", NativeName: "తెలుగు"},
	}
}

var labels = map[string]string{
	"en": "English",
	"hi": "Hindi (हिन्दी)",
	"mr": "Marathi (मराठी)",
	"gu": "Gujarati (ગુજરાતી)",
	"pa": "Punjabi (ਪੰਜਾਬੀ)",
	"ta": "Tamil (தமிழ்)",
	"te": "Telugu (తెలుగు)",
}

var shortLabels = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"mr": "Marathi",
	"gu": "Gujarati",
	"pa": "Punjabi",
	"ta": "Tamil",
	"te": "Telugu",
}

// IsSupported reports whether code is one of the supported language codes.
func IsSupported(code string) bool {
	_, ok := labels[code]
	return ok
}

// Normalize lowercases code and falls back to "en" for anything unsupported.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if IsSupported(code) {
		return code
	}
	return "en"
}

// Label returns the display name used in translation prompts, including the
// native script so the model is unambiguous about the target.
func Label(code string) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return code
}

// ShortLabel returns the plain English name of a language, used when naming
// the answer language in generation prompts.
func ShortLabel(code string) string {
	if label, ok := shortLabels[code]; ok {
		return label
	}
	return "English"
}
