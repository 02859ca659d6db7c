package scoring

import (
	"fmt"
	"math"

	"github.com/delimatsuo/headhunter/internal/model"
)

// Role-weight presets: a closed set of named, complete weight vectors. Each
// preset sums to 1.0 before overrides; resolution renormalizes afterwards
// so the invariant holds for every override combination.
var presets = map[model.RoleType]model.SignalWeights{
	model.RoleTypeDefault: {
		VectorSimilarity:   0.15,
		LevelMatch:         0.10,
		SpecialtyMatch:     0.10,
		TechStackMatch:     0.10,
		FunctionMatch:      0.05,
		TrajectoryFit:      0.10,
		CompanyPedigree:    0.05,
		SkillsExact:        0.15,
		SkillsInferred:     0.05,
		SeniorityAlignment: 0.05,
		RecencyBoost:       0.05,
		CompanyRelevance:   0.05,
	},
	model.RoleTypeExecutive: {
		VectorSimilarity:   0.10,
		LevelMatch:         0.15,
		SpecialtyMatch:     0.05,
		TechStackMatch:     0.02,
		FunctionMatch:      0.03,
		TrajectoryFit:      0.15,
		CompanyPedigree:    0.15,
		SkillsExact:        0.05,
		SkillsInferred:     0.03,
		SeniorityAlignment: 0.15,
		RecencyBoost:       0.02,
		CompanyRelevance:   0.10,
	},
	model.RoleTypeManager: {
		VectorSimilarity:   0.10,
		LevelMatch:         0.12,
		SpecialtyMatch:     0.08,
		TechStackMatch:     0.05,
		FunctionMatch:      0.05,
		TrajectoryFit:      0.15,
		CompanyPedigree:    0.10,
		SkillsExact:        0.10,
		SkillsInferred:     0.05,
		SeniorityAlignment: 0.10,
		RecencyBoost:       0.05,
		CompanyRelevance:   0.05,
	},
	model.RoleTypeIC: {
		VectorSimilarity:   0.15,
		LevelMatch:         0.08,
		SpecialtyMatch:     0.10,
		TechStackMatch:     0.15,
		FunctionMatch:      0.07,
		TrajectoryFit:      0.08,
		CompanyPedigree:    0.04,
		SkillsExact:        0.18,
		SkillsInferred:     0.06,
		SeniorityAlignment: 0.04,
		RecencyBoost:       0.03,
		CompanyRelevance:   0.02,
	},
}

// Preset returns the named preset, falling back to default for unknown
// role types.
func Preset(roleType model.RoleType) model.SignalWeights {
	if w, ok := presets[roleType]; ok {
		return w
	}
	return presets[model.RoleTypeDefault]
}

// ResolveWeights applies per-request overrides on top of the role preset
// and renormalizes so the result sums to exactly 1.0. Unknown signal names
// and negative values are client errors: they reach us straight from the
// request body.
func ResolveWeights(roleType model.RoleType, overrides map[string]float64) (model.SignalWeights, error) {
	resolved := Preset(roleType).Map()

	for name, value := range overrides {
		if _, ok := resolved[name]; !ok {
			return model.SignalWeights{}, fmt.Errorf("unknown signal weight %q", name)
		}
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return model.SignalWeights{}, fmt.Errorf("signal weight %q must be a non-negative number", name)
		}
		resolved[name] = value
	}

	sum := 0.0
	for _, v := range resolved {
		sum += v
	}
	if sum <= 0 {
		return model.SignalWeights{}, fmt.Errorf("signal weights sum to zero")
	}
	for name := range resolved {
		resolved[name] /= sum
	}

	return weightsFromMap(resolved), nil
}

func weightsFromMap(m map[string]float64) model.SignalWeights {
	return model.SignalWeights{
		VectorSimilarity:   m[model.SignalVectorSimilarity],
		LevelMatch:         m[model.SignalLevelMatch],
		SpecialtyMatch:     m[model.SignalSpecialtyMatch],
		TechStackMatch:     m[model.SignalTechStackMatch],
		FunctionMatch:      m[model.SignalFunctionMatch],
		TrajectoryFit:      m[model.SignalTrajectoryFit],
		CompanyPedigree:    m[model.SignalCompanyPedigree],
		SkillsExact:        m[model.SignalSkillsExact],
		SkillsInferred:     m[model.SignalSkillsInferred],
		SeniorityAlignment: m[model.SignalSeniorityAlignment],
		RecencyBoost:       m[model.SignalRecencyBoost],
		CompanyRelevance:   m[model.SignalCompanyRelevance],
	}
}
