package model

import "time"

// Artifact roles
const (
	ArtifactRoleSource      = "source"
	ArtifactRoleTranslation = "translation"
)

// AudioArtifact is a synthesized MP3 stored on disk, addressable by ID.
type AudioArtifact struct {
	ID            string    `json:"id"`
	TranslationID int64     `json:"translationId,string"`
	Role          string    `json:"role"`
	Language      string    `json:"language"`
	Path          string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}
