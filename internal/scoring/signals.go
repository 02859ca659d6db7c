package scoring

import (
	"strings"
	"time"

	"github.com/delimatsuo/headhunter/internal/model"
	"github.com/delimatsuo/headhunter/internal/skillgraph"
	"github.com/delimatsuo/headhunter/internal/trajectory"
)

// neutral is the score a comparator reports when its inputs are missing.
// Missing data must never sink or lift a candidate on its own.
const neutral = 0.5

func vectorSimilarityScore(similarity float64, present bool) float64 {
	if !present {
		return neutral
	}
	return clamp01(similarity)
}

// levelMatchScore compares ladder levels on the cross-track IC scale.
func levelMatchScore(candidateLevel, targetLevel int) float64 {
	if candidateLevel == trajectory.LevelUnknown || targetLevel == trajectory.LevelUnknown {
		return neutral
	}
	diff := trajectory.ComparableLevel(candidateLevel) - trajectory.ComparableLevel(targetLevel)
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.8
	case 2:
		return 0.6
	case 3:
		return 0.4
	default:
		return 0.2
	}
}

func specialtyMatchScore(candidate, target string) float64 {
	if candidate == "" || target == "" {
		return neutral
	}
	c := skillgraph.Normalize(candidate)
	t := skillgraph.Normalize(target)
	switch {
	case c == t:
		return 1.0
	case strings.Contains(c, t) || strings.Contains(t, c):
		return 0.7
	default:
		return 0.2
	}
}

// techStackMatchScore is the coverage ratio of the requested stack over the
// candidate's declared skills, alias-normalized through the graph.
func techStackMatchScore(skills []model.DeclaredSkill, stack []string, graph *skillgraph.Graph) float64 {
	if len(stack) == 0 || len(skills) == 0 {
		return neutral
	}
	declared := declaredSkillIndex(skills, graph)
	matched := 0
	for _, want := range stack {
		if _, ok := declared[resolveSkillKey(want, graph)]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(stack))
}

func functionMatchScore(candidateTitle string, query model.QueryContext) float64 {
	target := trajectory.ClassifyFunction(query.TargetSpecialty)
	if target == trajectory.FunctionGeneral {
		target = trajectory.ClassifyFunction(query.Text)
	}
	if target == trajectory.FunctionGeneral {
		return neutral
	}
	candidate := trajectory.ClassifyFunction(candidateTitle)
	if candidate == trajectory.FunctionGeneral {
		return neutral
	}
	if candidate == target {
		return 1.0
	}
	return 0.3
}

// Company pedigree tiers. A coarse static map: the point is separating
// candidates with recognizable engineering brands from the long tail, not
// ranking employers precisely.
var pedigreeTier1 = companySet(
	"google", "alphabet", "meta", "facebook", "amazon", "apple", "microsoft",
	"netflix", "stripe", "openai", "nvidia", "databricks", "airbnb", "uber",
)

var pedigreeTier2 = companySet(
	"lyft", "dropbox", "shopify", "spotify", "square", "block", "twilio",
	"datadog", "snowflake", "palantir", "coinbase", "pinterest", "linkedin",
	"salesforce", "atlassian", "cloudflare", "github", "gitlab", "doordash",
	"instacart", "robinhood", "reddit", "slack", "zoom", "elastic", "mongodb",
	"hashicorp", "figma", "notion", "plaid",
)

func companyPedigreeScore(candidate *model.Candidate) float64 {
	companies := candidateCompanies(candidate)
	if len(companies) == 0 {
		return neutral
	}

	current := normalizeCompany(candidate.CurrentCompany)
	score := neutral
	for _, c := range companies {
		switch {
		case pedigreeTier1[c] && c == current:
			return 1.0
		case pedigreeTier1[c]:
			if score < 0.85 {
				score = 0.85
			}
		case pedigreeTier2[c]:
			if score < 0.7 {
				score = 0.7
			}
		}
	}
	return score
}

func seniorityAlignmentScore(candidateLevel, targetLevel int, direction trajectory.Direction) float64 {
	if candidateLevel == trajectory.LevelUnknown || targetLevel == trajectory.LevelUnknown {
		return neutral
	}
	diff := trajectory.ComparableLevel(candidateLevel) - trajectory.ComparableLevel(targetLevel)

	score := 1.0
	gap := diff
	if gap < 0 {
		gap = -gap
	}
	if gap > 5 {
		gap = 5
	}
	score -= float64(gap) * 0.15

	// A candidate one step under the bar who is clearly trending upward is
	// a better bet than the raw gap suggests.
	if diff < 0 && direction == trajectory.DirectionUpward {
		score += 0.1
	}
	return clamp01(score)
}

func recencyBoostScore(lastActiveAt *time.Time, now time.Time) float64 {
	if lastActiveAt == nil {
		return neutral
	}
	age := now.Sub(*lastActiveAt)
	switch {
	case age <= 30*24*time.Hour:
		return 1.0
	case age <= 90*24*time.Hour:
		return 0.8
	case age <= 180*24*time.Hour:
		return 0.65
	case age <= 365*24*time.Hour:
		return 0.5
	default:
		return 0.35
	}
}

func companyRelevanceScore(candidate *model.Candidate, targets []string) float64 {
	if len(targets) == 0 {
		return neutral
	}
	wanted := make(map[string]bool, len(targets))
	for _, t := range targets {
		wanted[normalizeCompany(t)] = true
	}

	if wanted[normalizeCompany(candidate.CurrentCompany)] {
		return 1.0
	}
	for _, e := range candidate.Experience {
		if wanted[normalizeCompany(e.Company)] {
			return 0.8
		}
	}
	return 0.3
}

// skillMatchScores computes skills_exact, skills_inferred and the match
// explanations in one pass. Exact coverage is the ratio of required skills
// the candidate declares (alias-normalized). Each remaining required skill
// is then searched for in the graph expansion of every declared skill; the
// best expansion-confidence × declared-confidence product becomes its
// effective match, so a Django candidate still registers on a Python
// requirement without ever claiming Python.
func skillMatchScores(candidate *model.Candidate, required []string, expander *skillgraph.Expander) (exact, inferred float64, matches []model.SkillMatch) {
	if len(required) == 0 {
		return neutral, neutral, nil
	}

	graph := expander.Graph()
	declared := declaredSkillIndex(candidate.Skills, graph)

	exactCount := 0
	var unmatched []string
	for _, req := range required {
		if via, ok := declared[resolveSkillKey(req, graph)]; ok {
			exactCount++
			matches = append(matches, model.SkillMatch{
				Required:   req,
				MatchedVia: via.name,
				Tier:       model.SkillMatchExact,
				Confidence: via.confidence,
			})
			continue
		}
		unmatched = append(unmatched, req)
	}
	exact = float64(exactCount) / float64(len(required))

	inferredTotal := 0.0
	for _, req := range unmatched {
		reqKey := resolveSkillKey(req, graph)

		var best *model.SkillMatch
		for _, skill := range candidate.Skills {
			declaredConfidence := skill.Confidence
			if declaredConfidence <= 0 {
				declaredConfidence = 1.0
			}
			expansion := expander.Expand(skill.Name, 0)
			for _, related := range expansion.Related {
				if related.SkillID != reqKey && skillgraph.Normalize(related.Name) != reqKey {
					continue
				}
				effective := related.Confidence * declaredConfidence
				if best == nil || effective > best.Confidence {
					best = &model.SkillMatch{
						Required:   req,
						MatchedVia: skill.Name,
						Tier:       inferredTier(related.Distance),
						Confidence: effective,
						Distance:   related.Distance,
					}
				}
			}
		}
		if best != nil {
			inferredTotal += best.Confidence
			matches = append(matches, *best)
		}
	}
	inferred = inferredTotal / float64(len(required))

	return exact, inferred, matches
}

func inferredTier(distance int) model.SkillMatchTier {
	if distance <= 1 {
		return model.SkillMatchRelated
	}
	return model.SkillMatchTransferable
}

type declaredRef struct {
	name       string
	confidence float64
}

// declaredSkillIndex keys a candidate's skills by graph node ID when the
// name resolves, normalized name otherwise, so "JS" and "JavaScript" both
// satisfy a "javascript" requirement.
func declaredSkillIndex(skills []model.DeclaredSkill, graph *skillgraph.Graph) map[string]declaredRef {
	index := make(map[string]declaredRef, len(skills))
	for _, s := range skills {
		confidence := s.Confidence
		if confidence <= 0 {
			confidence = 1.0
		}
		key := resolveSkillKey(s.Name, graph)
		if existing, ok := index[key]; !ok || confidence > existing.confidence {
			index[key] = declaredRef{name: s.Name, confidence: confidence}
		}
	}
	return index
}

func resolveSkillKey(name string, graph *skillgraph.Graph) string {
	if graph != nil {
		if node, ok := graph.Resolve(name); ok {
			return node.ID
		}
	}
	return skillgraph.Normalize(name)
}

func candidateCompanies(candidate *model.Candidate) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		n := normalizeCompany(name)
		if n == "" || seen[n] {
			return
		}
		seen[n] = true
		out = append(out, n)
	}
	add(candidate.CurrentCompany)
	for _, e := range candidate.Experience {
		add(e.Company)
	}
	return out
}

func normalizeCompany(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range []string{", inc.", ", inc", " inc.", " inc", " llc", " ltd", " gmbh", " corp", " corporation", " co."} {
		n = strings.TrimSuffix(n, suffix)
	}
	return strings.TrimSpace(n)
}

func companySet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
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
