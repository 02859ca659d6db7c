package scoring

import (
	"time"

	"github.com/delimatsuo/headhunter/internal/model"
	"github.com/delimatsuo/headhunter/internal/skillgraph"
	"github.com/delimatsuo/headhunter/internal/trajectory"
)

// Scorer computes the weighted multi-signal score for one candidate against
// one query. It holds no per-request state: a single scorer is shared by
// every pipeline invocation.
type Scorer struct {
	expander *skillgraph.Expander
	now      func() time.Time
}

// NewScorer builds a scorer over the given skill expander.
func NewScorer(expander *skillgraph.Expander) *Scorer {
	return &Scorer{expander: expander, now: time.Now}
}

// Input is one retrieval hit ready for scoring. VectorSimilarity is only
// meaningful when HasVectorSimilarity is set; candidates surfaced solely by
// lexical search carry no similarity and score neutral on that signal.
type Input struct {
	Candidate           *model.Candidate
	Hints               model.EnrichmentHints
	VectorSimilarity    float64
	HasVectorSimilarity bool
	RetrievalRank       int
}

// Score evaluates every signal for the candidate and combines them with the
// resolved weights. All signals land in [0,1] and the weights sum to 1.0,
// so the total is in [0,1] as well.
func (s *Scorer) Score(in Input, query model.QueryContext, weights model.SignalWeights) model.ScoredCandidate {
	candidate := in.Candidate
	metrics := trajectory.Analyze(candidate.Experience, in.Hints)
	candidateLevel := s.candidateLevel(candidate, in.Hints)

	fit := trajectory.CalculateFit(metrics, trajectory.FitContext{
		TargetTrack:    query.TargetTrack,
		RoleGrowthType: query.RoleGrowthType,
		AllowPivot:     query.AllowPivot,
	})

	exact, inferred, matches := skillMatchScores(candidate, query.RequiredSkills, s.expander)

	signals := model.SignalScores{
		VectorSimilarity:   vectorSimilarityScore(in.VectorSimilarity, in.HasVectorSimilarity),
		LevelMatch:         levelMatchScore(candidateLevel, query.TargetLevel),
		SpecialtyMatch:     specialtyMatchScore(candidate.Specialty, query.TargetSpecialty),
		TechStackMatch:     techStackMatchScore(candidate.Skills, query.TechStack, s.expander.Graph()),
		FunctionMatch:      functionMatchScore(s.latestTitle(candidate), query),
		TrajectoryFit:      fit,
		CompanyPedigree:    companyPedigreeScore(candidate),
		SkillsExact:        exact,
		SkillsInferred:     inferred,
		SeniorityAlignment: seniorityAlignmentScore(candidateLevel, query.TargetLevel, metrics.Direction),
		RecencyBoost:       recencyBoostScore(candidate.LastActiveAt, s.now()),
		CompanyRelevance:   companyRelevanceScore(candidate, query.TargetCompanies),
	}

	return model.ScoredCandidate{
		Candidate:     candidate,
		Total:         weightedTotal(signals, weights),
		Signals:       signals,
		SkillMatches:  matches,
		RetrievalRank: in.RetrievalRank,
	}
}

func weightedTotal(signals model.SignalScores, weights model.SignalWeights) float64 {
	scores := signals.Map()
	total := 0.0
	for name, weight := range weights.Map() {
		total += weight * scores[name]
	}
	return clamp01(total)
}

func (s *Scorer) candidateLevel(candidate *model.Candidate, hints model.EnrichmentHints) int {
	if lvl := trajectory.MapTitleToLevel(s.latestTitle(candidate)); lvl != trajectory.LevelUnknown {
		return lvl
	}
	if hints.Level > trajectory.LevelUnknown {
		return hints.Level
	}
	return trajectory.LevelUnknown
}

func (s *Scorer) latestTitle(candidate *model.Candidate) string {
	if candidate.CurrentTitle != "" {
		return candidate.CurrentTitle
	}
	if n := len(candidate.Experience); n > 0 {
		return candidate.Experience[n-1].Title
	}
	return ""
}
