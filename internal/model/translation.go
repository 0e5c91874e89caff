package model

import "time"

// Translation is a single history record: one source text and its result.
type Translation struct {
	ID             int64     `json:"id,string"`
	SourceLang     string    `json:"sourceLang"`
	TargetLang     string    `json:"targetLang"`
	Mode           string    `json:"mode"`
	SourceText     string    `json:"sourceText"`
	TranslatedText string    `json:"translatedText"`
	Detected       bool      `json:"detected"`
	CreatedAt      time.Time `json:"createdAt"`
}
