package dto

import (
	"github.com/delimatsuo/headhunter/internal/model"
)

// SearchRequest is the external search contract. Validation here covers
// shape only; semantic validation (unknown weight names, negative values)
// happens in the pipeline where the signal registry lives.
type SearchRequest struct {
	Query            string             `json:"query" binding:"required,min=2,max=2000"`
	RequiredSkills   []string           `json:"required_skills,omitempty" binding:"omitempty,max=50,dive,min=1,max=100"`
	TechStack        []string           `json:"tech_stack,omitempty" binding:"omitempty,max=50,dive,min=1,max=100"`
	TargetLevel      *int               `json:"target_level,omitempty" binding:"omitempty,min=0,max=13"`
	TargetTrack      string             `json:"target_track,omitempty" binding:"omitempty,oneof=ic management"`
	TargetSpecialty  string             `json:"target_specialty,omitempty" binding:"omitempty,max=100"`
	TargetCompanies  []string           `json:"target_companies,omitempty" binding:"omitempty,max=20,dive,min=1,max=200"`
	RoleType         string             `json:"role_type,omitempty" binding:"omitempty,oneof=executive manager ic default"`
	RoleGrowthType   string             `json:"role_growth_type,omitempty" binding:"omitempty,oneof=high_growth stable"`
	AllowPivot       bool               `json:"allow_pivot,omitempty"`
	WeightOverrides  map[string]float64 `json:"weight_overrides,omitempty" binding:"omitempty,max=12"`
	Filters          map[string]string  `json:"filters,omitempty" binding:"omitempty,max=10"`
	Debug            bool               `json:"debug,omitempty"`
	IncludeRationale bool               `json:"include_rationale,omitempty"`
}

// ToQueryContext maps the request onto the internal query model.
func (r SearchRequest) ToQueryContext() model.QueryContext {
	targetLevel := -1
	if r.TargetLevel != nil {
		targetLevel = *r.TargetLevel
	}
	roleType := model.RoleType(r.RoleType)
	if roleType == "" {
		roleType = model.RoleTypeDefault
	}
	return model.QueryContext{
		Text:            r.Query,
		RequiredSkills:  r.RequiredSkills,
		TechStack:       r.TechStack,
		TargetLevel:     targetLevel,
		TargetTrack:     model.Track(r.TargetTrack),
		TargetSpecialty: r.TargetSpecialty,
		TargetCompanies: r.TargetCompanies,
		RoleType:        roleType,
		RoleGrowthType:  model.GrowthType(r.RoleGrowthType),
		AllowPivot:      r.AllowPivot,
		WeightOverrides: r.WeightOverrides,
		Filters:         r.Filters,
	}
}
