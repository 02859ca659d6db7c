package trajectory

import "strings"

// Title levels. 0–6 is the individual-contributor ladder, 7–13 the
// management ladder. LevelUnknown marks titles that do not map; callers
// drop those before averaging rather than treating them as errors.
const (
	LevelUnknown = -1

	LevelIntern        = 0
	LevelJunior        = 1
	LevelMid           = 2
	LevelSenior        = 3
	LevelStaff         = 4
	LevelPrincipal     = 5
	LevelDistinguished = 6

	LevelManager       = 7
	LevelSeniorManager = 8
	LevelDirector      = 9
	LevelSeniorDir     = 10
	LevelVP            = 11
	LevelSVP           = 12
	LevelCLevel        = 13
)

// managementBoundary separates the two ladders.
const managementBoundary = LevelManager

// trackOffset maps a management level back onto the IC scale when a
// transition crosses tracks (manager ≈ senior), so a lateral IC→management
// move at equivalent seniority is not misread as a demotion. Known
// approximation at ladder extremes.
const trackOffset = 4

type titlePattern struct {
	tokens []string // all must be present
	level  int
}

// Ordered specific-before-generic: "vp of engineering" must win over
// "engineering", "senior engineering manager" over "manager".
var titlePatterns = []titlePattern{
	{tokens: []string{"cto"}, level: LevelCLevel},
	{tokens: []string{"chief", "technology", "officer"}, level: LevelCLevel},
	{tokens: []string{"chief", "technical", "officer"}, level: LevelCLevel},
	{tokens: []string{"chief", "architect"}, level: LevelCLevel},

	{tokens: []string{"senior", "vice", "president"}, level: LevelSVP},
	{tokens: []string{"svp"}, level: LevelSVP},
	{tokens: []string{"evp"}, level: LevelSVP},

	{tokens: []string{"vice", "president"}, level: LevelVP},
	{tokens: []string{"vp"}, level: LevelVP},

	{tokens: []string{"senior", "director"}, level: LevelSeniorDir},
	{tokens: []string{"director"}, level: LevelDirector},
	{tokens: []string{"head", "of"}, level: LevelDirector},

	{tokens: []string{"senior", "manager"}, level: LevelSeniorManager},
	{tokens: []string{"group", "manager"}, level: LevelSeniorManager},
	{tokens: []string{"manager"}, level: LevelManager},

	{tokens: []string{"distinguished"}, level: LevelDistinguished},
	{tokens: []string{"fellow"}, level: LevelDistinguished},

	{tokens: []string{"principal"}, level: LevelPrincipal},

	{tokens: []string{"staff"}, level: LevelStaff},

	{tokens: []string{"senior"}, level: LevelSenior},
	{tokens: []string{"lead"}, level: LevelSenior},

	{tokens: []string{"junior"}, level: LevelJunior},
	{tokens: []string{"associate"}, level: LevelJunior},
	{tokens: []string{"graduate"}, level: LevelJunior},

	{tokens: []string{"intern"}, level: LevelIntern},
	{tokens: []string{"trainee"}, level: LevelIntern},

	// Plain practitioner titles default to mid level.
	{tokens: []string{"engineer"}, level: LevelMid},
	{tokens: []string{"developer"}, level: LevelMid},
	{tokens: []string{"programmer"}, level: LevelMid},
	{tokens: []string{"architect"}, level: LevelStaff},
	{tokens: []string{"sre"}, level: LevelMid},
	{tokens: []string{"swe"}, level: LevelMid},
}

// Function words that disqualify a management-sounding title from the
// engineering ladder: a Product Manager is not an Engineering Manager.
var nonEngineeringTokens = map[string]bool{
	"product":      true,
	"project":      true,
	"program":      true,
	"marketing":    true,
	"sales":        true,
	"account":      true,
	"finance":      true,
	"hr":           true,
	"people":       true,
	"talent":       true,
	"recruiting":   true,
	"legal":        true,
	"design":       true,
	"community":    true,
	"customer":     true,
	"support":      true,
	"office":       true,
	"facilities":   true,
	"procurement":  true,
	"communications": true,
}

var engineeringTokens = map[string]bool{
	"engineering":    true,
	"engineer":       true,
	"software":       true,
	"technology":     true,
	"technical":      true,
	"tech":           true,
	"platform":       true,
	"infrastructure": true,
	"developer":      true,
	"development":    true,
	"swe":            true,
	"sre":            true,
	"devops":         true,
	"data":           true,
	"security":       true,
	"cto":            true,
}

var abbreviations = map[string]string{
	"sr":   "senior",
	"jr":   "junior",
	"mgr":  "manager",
	"dir":  "director",
	"eng":  "engineering",
	"dev":  "developer",
	"dist": "distinguished",
}

// MapTitleToLevel maps a free-form title to a ladder level, or LevelUnknown
// when it does not look like an engineering role. Matching is pattern-based
// over normalized tokens with specific patterns checked first, so
// "Sr. Software Engineer" and "Senior Software Engineer" land on the same
// level.
func MapTitleToLevel(title string) int {
	tokens := tokenizeTitle(title)
	if len(tokens) == 0 {
		return LevelUnknown
	}

	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}

	hasNonEng := false
	hasEng := false
	for t := range set {
		if nonEngineeringTokens[t] {
			hasNonEng = true
		}
		if engineeringTokens[t] {
			hasEng = true
		}
	}
	// "Product Manager" carries a non-engineering function word and no
	// engineering context: off the ladder entirely.
	if hasNonEng && !hasEng {
		return LevelUnknown
	}

	for _, p := range titlePatterns {
		matched := true
		for _, tok := range p.tokens {
			if !set[tok] {
				matched = false
				break
			}
		}
		if matched {
			return p.level
		}
	}
	return LevelUnknown
}

// IsManagementLevel reports whether a level sits on the management ladder.
func IsManagementLevel(level int) bool {
	return level >= managementBoundary
}

// normalizeToICScale projects a management level onto the IC scale for
// cross-track comparison.
func normalizeToICScale(level int) int {
	if IsManagementLevel(level) {
		return level - trackOffset
	}
	return level
}

// ComparableLevel projects any ladder level onto the IC scale so levels
// from different tracks can be differenced. Unknown stays unknown.
func ComparableLevel(level int) int {
	if level == LevelUnknown {
		return LevelUnknown
	}
	return normalizeToICScale(level)
}

func tokenizeTitle(title string) []string {
	s := strings.ToLower(title)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	out := fields[:0]
	for _, f := range fields {
		if full, ok := abbreviations[f]; ok {
			f = full
		}
		out = append(out, f)
	}
	return out
}
