package models

// DefaultAvatar is used when a member is created without one.
const DefaultAvatar = "😊"

// Member represents a participant in a project.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	// It is immutable for the lifetime of the member.
	ID string `json:"id"`

	// Name is the display name. It is unique case-insensitively
	// within a project and may change over time.
	Name string `json:"name"`

	// Avatar is a free-form display glyph (typically an emoji).
	Avatar string `json:"avatar"`
}
