package trajectory

import "github.com/delimatsuo/headhunter/internal/model"

// FitContext describes the role the candidate is being scored against.
type FitContext struct {
	TargetTrack    model.Track
	RoleGrowthType model.GrowthType
	AllowPivot     bool
}

// Base fit by direction × velocity. Rows degrade with direction, columns
// with velocity.
var baseFit = map[Direction]map[model.Velocity]float64{
	DirectionUpward: {
		model.VelocityFast:   1.0,
		model.VelocityNormal: 0.9,
		model.VelocitySlow:   0.75,
	},
	DirectionLateral: {
		model.VelocityFast:   0.7,
		model.VelocityNormal: 0.6,
		model.VelocitySlow:   0.5,
	},
	DirectionDownward: {
		model.VelocityFast:   0.45,
		model.VelocityNormal: 0.4,
		model.VelocitySlow:   0.3,
	},
}

// CalculateFit scores how well a trajectory suits a target role. The base
// direction×velocity score is blended 50/50 with track alignment, then
// shaped by growth-type and pivot modifiers. Always returns a value in
// [0,1].
func CalculateFit(metrics Metrics, ctx FitContext) float64 {
	base := 0.6
	if byVelocity, ok := baseFit[metrics.Direction]; ok {
		if v, ok := byVelocity[metrics.Velocity]; ok {
			base = v
		}
	}

	score := 0.5*base + 0.5*trackAlignment(metrics.Track, ctx.TargetTrack)

	if ctx.RoleGrowthType == model.GrowthTypeHighGrowth && metrics.Velocity == model.VelocityFast {
		score *= 1.2
	}
	if ctx.RoleGrowthType == model.GrowthTypeStable && metrics.Velocity == model.VelocityNormal {
		score *= 1.1
	}
	if metrics.Type == TypeCareerPivot && !ctx.AllowPivot {
		score *= 0.7
	}

	return clamp01(score)
}

func trackAlignment(candidate, target model.Track) float64 {
	if target == "" || candidate == "" {
		return 0.5 // nothing to align against: neutral
	}
	if candidate == target {
		return 1.0
	}
	return 0.3
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
