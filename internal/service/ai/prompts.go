package ai

import "fmt"

// Translation modes. Each mode selects a different prompt template.
const (
	ModeStandard  = "standard"
	ModeCreative  = "creative"
	ModeTechnical = "technical"
	ModeFormal    = "formal"
	ModeVoice     = "voice"
)

// IsValidMode reports whether mode names a known prompt template.
func IsValidMode(mode string) bool {
	switch mode {
	case ModeStandard, ModeCreative, ModeTechnical, ModeFormal, ModeVoice:
		return true
	}
	return false
}

// modeInstructions is the per-mode line added to the translation prompt.
var modeInstructions = map[string]string{
	ModeStandard:  "Translate accurately and naturally",
	ModeCreative:  "Preserve the style, tone and artistic meaning of the original",
	ModeTechnical: "Maintain technical accuracy; keep terminology precise and consistent",
	ModeFormal:    "Use formal, professional language throughout",
	ModeVoice:     "Use natural spoken phrasing suited for reading aloud",
}

// GetTranslatePrompt returns the system prompt for translating text.
func GetTranslatePrompt(mode, sourceLang, targetLang string) string {
	instruction, ok := modeInstructions[mode]
	if !ok {
		instruction = modeInstructions[ModeStandard]
	}

	return fmt.Sprintf(`You are an expert translator. Translate the text into the target language.

<context>
<source_language>%s</source_language>
<target_language>%s</target_language>
</context>

<instructions>
1. You MUST translate into the language specified in <target_language>. Responses in other languages are invalid
2. %s
3. Output ONLY the translated text, nothing else
4. Keep proper nouns and brand names unchanged
5. NEVER translate URLs or email addresses
6. NO explanations, NO notes, NO markdown formatting
7. NO leading or trailing newlines
</instructions>`, sourceLang, targetLang, instruction)
}

// GetDetectPrompt returns the system prompt for language identification.
func GetDetectPrompt() string {
	return `You are a language identifier.

<instructions>
1. Name the language the given text is written in
2. Respond with ONLY the language name in English, e.g. "French"
3. NO explanations, NO punctuation, NO markdown formatting
</instructions>`
}
