// Package language holds the fixed dictionary of languages the agent can
// translate between, and the mapping from display names to service codes.
package language

import "strings"

// Language pairs a display name with its ISO 639-1 code.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Default is used when detection fails or a name cannot be matched.
const Default = "English"

// AutoDetect is the sentinel source-language value that triggers detection.
const AutoDetect = "Auto-detect"

var languages = []Language{
	{"English", "en"}, {"Spanish", "es"}, {"French", "fr"}, {"German", "de"}, {"Italian", "it"},
	{"Portuguese", "pt"}, {"Russian", "ru"}, {"Japanese", "ja"}, {"Korean", "ko"}, {"Chinese (Simplified)", "zh-cn"},
	{"Chinese (Traditional)", "zh-tw"}, {"Arabic", "ar"}, {"Hindi", "hi"}, {"Turkish", "tr"}, {"Dutch", "nl"},
	{"Swedish", "sv"}, {"Norwegian", "no"}, {"Danish", "da"}, {"Finnish", "fi"}, {"Polish", "pl"},
	{"Czech", "cs"}, {"Hungarian", "hu"}, {"Romanian", "ro"}, {"Bulgarian", "bg"}, {"Greek", "el"},
	{"Hebrew", "he"}, {"Thai", "th"}, {"Vietnamese", "vi"}, {"Indonesian", "id"}, {"Malay", "ms"},
	{"Filipino", "fil"}, {"Ukrainian", "uk"}, {"Croatian", "hr"}, {"Serbian", "sr"}, {"Slovak", "sk"},
}

// speechCodes overrides codes for the TTS endpoint where they differ from the
// translation codes.
var speechCodes = map[string]string{
	"Chinese (Simplified)": "zh",
}

// All returns the dictionary in its fixed order.
func All() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// IsSupported reports whether name is a known display name.
func IsSupported(name string) bool {
	for _, l := range languages {
		if l.Name == name {
			return true
		}
	}
	return false
}

// CodeFor returns the ISO code for a display name, or "en" when unknown.
func CodeFor(name string) string {
	for _, l := range languages {
		if l.Name == name {
			return l.Code
		}
	}
	return "en"
}

// SpeechCodeFor returns the code to pass to a TTS service for a display name.
func SpeechCodeFor(name string) string {
	if code, ok := speechCodes[name]; ok {
		return code
	}
	return CodeFor(name)
}

// Match finds the dictionary name mentioned in a free-form model reply such
// as "That text is written in French." Returns Default when nothing matches.
func Match(reply string) (string, bool) {
	lowered := strings.ToLower(reply)
	for _, l := range languages {
		if strings.Contains(lowered, strings.ToLower(l.Name)) {
			return l.Name, true
		}
	}
	return Default, false
}
