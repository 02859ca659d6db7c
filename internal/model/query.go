package model

// RoleType selects the signal-weight preset for a search.
type RoleType string

const (
	RoleTypeExecutive RoleType = "executive"
	RoleTypeManager   RoleType = "manager"
	RoleTypeIC        RoleType = "ic"
	RoleTypeDefault   RoleType = "default"
)

// Track is the career ladder a role sits on.
type Track string

const (
	TrackIC         Track = "ic"
	TrackManagement Track = "management"
)

// GrowthType describes how fast the hiring team expects the role to scale.
type GrowthType string

const (
	GrowthTypeHighGrowth GrowthType = "high_growth"
	GrowthTypeStable     GrowthType = "stable"
)

// QueryContext is everything the scorer and pipeline know about the search.
// It is immutable for the duration of one pipeline invocation.
type QueryContext struct {
	Text            string             `json:"text"`
	RequiredSkills  []string           `json:"required_skills,omitempty"`
	TechStack       []string           `json:"tech_stack,omitempty"`
	TargetLevel     int                `json:"target_level"` // -1 when unspecified
	TargetTrack     Track              `json:"target_track,omitempty"`
	TargetSpecialty string             `json:"target_specialty,omitempty"`
	TargetCompanies []string           `json:"target_companies,omitempty"`
	RoleType        RoleType           `json:"role_type,omitempty"`
	RoleGrowthType  GrowthType         `json:"role_growth_type,omitempty"`
	AllowPivot      bool               `json:"allow_pivot"`
	WeightOverrides map[string]float64 `json:"weight_overrides,omitempty"`
	Filters         map[string]string  `json:"filters,omitempty"`
}
