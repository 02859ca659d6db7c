package model

// Signal names. These are the keys used for weight overrides and in the
// response breakdown; keep them stable.
const (
	SignalVectorSimilarity   = "vector_similarity"
	SignalLevelMatch         = "level_match"
	SignalSpecialtyMatch     = "specialty_match"
	SignalTechStackMatch     = "tech_stack_match"
	SignalFunctionMatch      = "function_match"
	SignalTrajectoryFit      = "trajectory_fit"
	SignalCompanyPedigree    = "company_pedigree"
	SignalSkillsExact        = "skills_exact"
	SignalSkillsInferred     = "skills_inferred"
	SignalSeniorityAlignment = "seniority_alignment"
	SignalRecencyBoost       = "recency_boost"
	SignalCompanyRelevance   = "company_relevance"
)

// SignalNames lists every signal in presentation order.
var SignalNames = []string{
	SignalVectorSimilarity,
	SignalLevelMatch,
	SignalSpecialtyMatch,
	SignalTechStackMatch,
	SignalFunctionMatch,
	SignalTrajectoryFit,
	SignalCompanyPedigree,
	SignalSkillsExact,
	SignalSkillsInferred,
	SignalSeniorityAlignment,
	SignalRecencyBoost,
	SignalCompanyRelevance,
}

// SignalScores holds every comparator output in [0,1]. A comparator that
// lacks sufficient input reports the neutral 0.5, never a null, so the
// weighted sum is always defined.
type SignalScores struct {
	VectorSimilarity   float64 `json:"vector_similarity"`
	LevelMatch         float64 `json:"level_match"`
	SpecialtyMatch     float64 `json:"specialty_match"`
	TechStackMatch     float64 `json:"tech_stack_match"`
	FunctionMatch      float64 `json:"function_match"`
	TrajectoryFit      float64 `json:"trajectory_fit"`
	CompanyPedigree    float64 `json:"company_pedigree"`
	SkillsExact        float64 `json:"skills_exact"`
	SkillsInferred     float64 `json:"skills_inferred"`
	SeniorityAlignment float64 `json:"seniority_alignment"`
	RecencyBoost       float64 `json:"recency_boost"`
	CompanyRelevance   float64 `json:"company_relevance"`
}

// Map returns the scores keyed by signal name.
func (s SignalScores) Map() map[string]float64 {
	return map[string]float64{
		SignalVectorSimilarity:   s.VectorSimilarity,
		SignalLevelMatch:         s.LevelMatch,
		SignalSpecialtyMatch:     s.SpecialtyMatch,
		SignalTechStackMatch:     s.TechStackMatch,
		SignalFunctionMatch:      s.FunctionMatch,
		SignalTrajectoryFit:      s.TrajectoryFit,
		SignalCompanyPedigree:    s.CompanyPedigree,
		SignalSkillsExact:        s.SkillsExact,
		SignalSkillsInferred:     s.SkillsInferred,
		SignalSeniorityAlignment: s.SeniorityAlignment,
		SignalRecencyBoost:       s.RecencyBoost,
		SignalCompanyRelevance:   s.CompanyRelevance,
	}
}

// SignalWeights is a resolved weight vector. Invariant: values sum to 1.0
// (within float tolerance) after resolution; immutable per scoring call.
type SignalWeights struct {
	VectorSimilarity   float64 `json:"vector_similarity"`
	LevelMatch         float64 `json:"level_match"`
	SpecialtyMatch     float64 `json:"specialty_match"`
	TechStackMatch     float64 `json:"tech_stack_match"`
	FunctionMatch      float64 `json:"function_match"`
	TrajectoryFit      float64 `json:"trajectory_fit"`
	CompanyPedigree    float64 `json:"company_pedigree"`
	SkillsExact        float64 `json:"skills_exact"`
	SkillsInferred     float64 `json:"skills_inferred"`
	SeniorityAlignment float64 `json:"seniority_alignment"`
	RecencyBoost       float64 `json:"recency_boost"`
	CompanyRelevance   float64 `json:"company_relevance"`
}

// Map returns the weights keyed by signal name.
func (w SignalWeights) Map() map[string]float64 {
	return map[string]float64{
		SignalVectorSimilarity:   w.VectorSimilarity,
		SignalLevelMatch:         w.LevelMatch,
		SignalSpecialtyMatch:     w.SpecialtyMatch,
		SignalTechStackMatch:     w.TechStackMatch,
		SignalFunctionMatch:      w.FunctionMatch,
		SignalTrajectoryFit:      w.TrajectoryFit,
		SignalCompanyPedigree:    w.CompanyPedigree,
		SignalSkillsExact:        w.SkillsExact,
		SignalSkillsInferred:     w.SkillsInferred,
		SignalSeniorityAlignment: w.SeniorityAlignment,
		SignalRecencyBoost:       w.RecencyBoost,
		SignalCompanyRelevance:   w.CompanyRelevance,
	}
}

// Sum returns the total of all weights.
func (w SignalWeights) Sum() float64 {
	total := 0.0
	for _, v := range w.Map() {
		total += v
	}
	return total
}

// ScoredCandidate pairs a candidate with its scoring breakdown.
type ScoredCandidate struct {
	Candidate     *Candidate   `json:"candidate"`
	Total         float64      `json:"total"`
	Signals       SignalScores `json:"signals"`
	SkillMatches  []SkillMatch `json:"skill_matches,omitempty"`
	RerankReason  string       `json:"rerank_reason,omitempty"`
	Rationale     string       `json:"rationale,omitempty"`
	RetrievalRank int          `json:"retrieval_rank"`
}

// SkillMatchTier distinguishes how a required skill was satisfied.
type SkillMatchTier string

const (
	SkillMatchExact        SkillMatchTier = "exact"
	SkillMatchInferred     SkillMatchTier = "inferred"
	SkillMatchRelated      SkillMatchTier = "related"
	SkillMatchTransferable SkillMatchTier = "transferable"
)

// SkillMatch explains one required-skill match, exact or graph-inferred.
type SkillMatch struct {
	Required   string         `json:"required"`
	MatchedVia string         `json:"matched_via"`
	Tier       SkillMatchTier `json:"tier"`
	Confidence float64        `json:"confidence"`
	Distance   int            `json:"distance,omitempty"`
}
