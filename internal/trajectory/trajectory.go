package trajectory

import (
	"time"

	"github.com/delimatsuo/headhunter/internal/model"
)

// Direction is the overall slope of a career.
type Direction string

const (
	DirectionUpward   Direction = "upward"
	DirectionLateral  Direction = "lateral"
	DirectionDownward Direction = "downward"
)

// Type classifies the shape of a progression.
type Type string

const (
	TypeTechnicalGrowth Type = "technical_growth"
	TypeLeadershipTrack Type = "leadership_track"
	TypeLateralMove     Type = "lateral_move"
	TypeCareerPivot     Type = "career_pivot"
)

// Metrics is derived fresh per scoring call from a candidate's experience;
// it is never persisted.
type Metrics struct {
	Direction Direction
	Velocity  model.Velocity
	Type      Type
	Track     model.Track // track of the most recent mapped title, "" if none
}

// Velocity thresholds in years per level gained.
const (
	fastYearsPerLevel = 2.0
	slowYearsPerLevel = 4.0
)

// CalculateDirection classifies the slope of a title sequence. Titles that
// do not map to a level are dropped before averaging; when a transition
// crosses the IC/management boundary, the management level is projected
// back onto the IC scale before differencing. Empty or unmappable input is
// lateral, a neutral default rather than an error.
func CalculateDirection(titles []string) Direction {
	levels := make([]int, 0, len(titles))
	for _, t := range titles {
		if lvl := MapTitleToLevel(t); lvl != LevelUnknown {
			levels = append(levels, lvl)
		}
	}
	if len(levels) < 2 {
		return DirectionLateral
	}

	total := 0.0
	for i := 1; i < len(levels); i++ {
		prev, next := levels[i-1], levels[i]
		if IsManagementLevel(prev) != IsManagementLevel(next) {
			prev = normalizeToICScale(prev)
			next = normalizeToICScale(next)
		}
		total += float64(next - prev)
	}
	mean := total / float64(len(levels)-1)

	switch {
	case mean > 0.5:
		return DirectionUpward
	case mean < -0.5:
		return DirectionDownward
	default:
		return DirectionLateral
	}
}

// CalculateVelocity measures promotion speed as years elapsed per level
// gained, over all dated upward transitions. It needs at least two datable
// level-increasing transitions; otherwise it falls back to the
// externally-supplied hint, and failing that, normal.
func CalculateVelocity(experience []model.ExperienceEntry, fallback model.Velocity) model.Velocity {
	var totalYears float64
	var totalLevels int
	transitions := 0

	prevLevel := LevelUnknown
	var prevStart *time.Time
	for _, entry := range experience {
		level := MapTitleToLevel(entry.Title)
		if level == LevelUnknown {
			continue
		}
		if prevLevel != LevelUnknown && level > prevLevel && prevStart != nil && entry.StartDate != nil {
			years := entry.StartDate.Sub(*prevStart).Hours() / (24 * 365.25)
			if years > 0 {
				totalYears += years
				totalLevels += level - prevLevel
				transitions++
			}
		}
		prevLevel = level
		prevStart = entry.StartDate
	}

	if transitions < 2 || totalLevels == 0 {
		if fallback != "" {
			return fallback
		}
		return model.VelocityNormal
	}

	yearsPerLevel := totalYears / float64(totalLevels)
	switch {
	case yearsPerLevel < fastYearsPerLevel:
		return model.VelocityFast
	case yearsPerLevel > slowYearsPerLevel:
		return model.VelocitySlow
	default:
		return model.VelocityNormal
	}
}

// ClassifyType detects the shape of a progression. Function changes are
// caught via keyword buckets independent of level mapping, so a pivot from
// data science into frontend is detected even when neither title maps to a
// ladder level.
func ClassifyType(titles []string) Type {
	if functionChanged(titles) || trackChanged(titles) {
		return TypeCareerPivot
	}

	levels := make([]int, 0, len(titles))
	for _, t := range titles {
		if lvl := MapTitleToLevel(t); lvl != LevelUnknown {
			levels = append(levels, lvl)
		}
	}
	if len(levels) < 2 {
		return TypeLateralMove
	}

	progressed := levels[len(levels)-1] > levels[0]
	allManagement := true
	allIC := true
	for _, lvl := range levels {
		if IsManagementLevel(lvl) {
			allIC = false
		} else {
			allManagement = false
		}
	}

	switch {
	case progressed && allIC:
		return TypeTechnicalGrowth
	case progressed && allManagement:
		return TypeLeadershipTrack
	default:
		return TypeLateralMove
	}
}

// Analyze runs the full classification over a candidate's experience.
// Hints supply fallbacks when dates or titles are unparseable.
func Analyze(experience []model.ExperienceEntry, hints model.EnrichmentHints) Metrics {
	titles := make([]string, 0, len(experience))
	for _, e := range experience {
		titles = append(titles, e.Title)
	}

	return Metrics{
		Direction: CalculateDirection(titles),
		Velocity:  CalculateVelocity(experience, hints.Velocity),
		Type:      ClassifyType(titles),
		Track:     latestTrack(titles),
	}
}

func trackChanged(titles []string) bool {
	prev := LevelUnknown
	for _, t := range titles {
		lvl := MapTitleToLevel(t)
		if lvl == LevelUnknown {
			continue
		}
		if prev != LevelUnknown && IsManagementLevel(prev) != IsManagementLevel(lvl) {
			return true
		}
		prev = lvl
	}
	return false
}

func latestTrack(titles []string) model.Track {
	track := model.Track("")
	for _, t := range titles {
		lvl := MapTitleToLevel(t)
		if lvl == LevelUnknown {
			continue
		}
		if IsManagementLevel(lvl) {
			track = model.TrackManagement
		} else {
			track = model.TrackIC
		}
	}
	return track
}
