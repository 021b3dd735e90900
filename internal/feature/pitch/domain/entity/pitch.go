// Package entity defines the domain entities for the pitch feature.
package entity

import "time"

// Pitch is one generated outreach pitch for a lead.
type Pitch struct {
	ID        string
	LeadID    string
	UserID    string
	Prompt    string
	Text      string
	Provider  string
	CreatedAt time.Time
}

// GenerateInput is what the dashboard posts to request a pitch.
type GenerateInput struct {
	LeadID string
	UserID string
	Prompt string
}

// GenerationRequest is handed to a pitch generator.
type GenerationRequest struct {
	LeadID string
	// Prompt is the user's own guidance, possibly empty.
	Prompt string
	// ModelPrompt is the full instruction sent to a language model.
	ModelPrompt string
}
