package model

import "time"

// Candidate is a full profile as hydrated from the candidate store.
// Pipeline stages treat candidates as read-only: each stage produces a new
// ordered view rather than mutating records in place.
type Candidate struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Headline       string            `json:"headline,omitempty"`
	CurrentTitle   string            `json:"current_title,omitempty"`
	CurrentCompany string            `json:"current_company,omitempty"`
	Skills         []DeclaredSkill   `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Specialty      string            `json:"specialty,omitempty"`
	LastActiveAt   *time.Time        `json:"last_active_at,omitempty"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// DeclaredSkill is a skill the candidate claims, with the enrichment
// pipeline's confidence in that claim. Confidence defaults to 1.0 for
// self-declared skills with direct evidence.
type DeclaredSkill struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// ExperienceEntry is one role in a candidate's history, ordered
// chronologically (oldest first). Dates are optional: real-world profiles
// frequently omit them, and every consumer must tolerate that.
type ExperienceEntry struct {
	Title     string     `json:"title"`
	Company   string     `json:"company,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Velocity is a categorical promotion-speed fallback supplied by upstream
// enrichment, used when experience dates are unparseable.
type Velocity string

const (
	VelocityFast   Velocity = "fast"
	VelocityNormal Velocity = "normal"
	VelocitySlow   Velocity = "slow"
)

// EnrichmentHints carries externally-derived fallbacks attached to a
// candidate by upstream processing. All fields are optional.
type EnrichmentHints struct {
	Velocity Velocity `json:"velocity,omitempty"`
	Level    int      `json:"level,omitempty"` // -1 when unknown
}
