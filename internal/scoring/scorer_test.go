package scoring

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/delimatsuo/headhunter/internal/model"
	"github.com/delimatsuo/headhunter/internal/skillgraph"
)

var _ = Describe("Scorer", func() {
	var (
		scorer *Scorer
		now    time.Time
	)

	BeforeEach(func() {
		expander := skillgraph.NewExpander(taxonomyGraph(), skillgraph.NoopCache{}, 2, 10)
		scorer = NewScorer(expander)
		now = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		scorer.now = func() time.Time { return now }
	})

	weights := func() model.SignalWeights {
		w, err := ResolveWeights(model.RoleTypeDefault, nil)
		Expect(err).NotTo(HaveOccurred())
		return w
	}

	strongCandidate := func() *model.Candidate {
		active := now.Add(-10 * 24 * time.Hour)
		return &model.Candidate{
			ID:             42,
			Name:           "Ada",
			CurrentTitle:   "Senior Backend Engineer",
			CurrentCompany: "Stripe",
			Specialty:      "backend",
			Skills: []model.DeclaredSkill{
				{Name: "Python", Confidence: 1.0},
				{Name: "PostgreSQL", Confidence: 0.9},
			},
			Experience: []model.ExperienceEntry{
				{Title: "Junior Engineer", Company: "Acme"},
				{Title: "Software Engineer", Company: "Stripe"},
				{Title: "Senior Backend Engineer", Company: "Stripe"},
			},
			LastActiveAt: &active,
		}
	}

	backendQuery := model.QueryContext{
		Text:            "senior backend engineer",
		RequiredSkills:  []string{"Python"},
		TechStack:       []string{"Python", "PostgreSQL"},
		TargetLevel:     3,
		TargetTrack:     model.TrackIC,
		TargetSpecialty: "backend",
		TargetCompanies: []string{"Stripe"},
	}

	It("keeps the total within [0,1]", func() {
		scored := scorer.Score(Input{Candidate: strongCandidate(), VectorSimilarity: 0.92, HasVectorSimilarity: true}, backendQuery, weights())
		Expect(scored.Total).To(BeNumerically(">=", 0))
		Expect(scored.Total).To(BeNumerically("<=", 1))
	})

	It("ranks an on-target candidate above an off-target one", func() {
		weak := &model.Candidate{
			ID:           7,
			Name:         "Bob",
			CurrentTitle: "Marketing Coordinator",
			Skills:       []model.DeclaredSkill{{Name: "Copywriting"}},
		}
		strong := scorer.Score(Input{Candidate: strongCandidate(), VectorSimilarity: 0.92, HasVectorSimilarity: true}, backendQuery, weights())
		off := scorer.Score(Input{Candidate: weak}, backendQuery, weights())
		Expect(strong.Total).To(BeNumerically(">", off.Total))
	})

	It("scores every signal neutral for an empty candidate and empty query", func() {
		scored := scorer.Score(Input{Candidate: &model.Candidate{ID: 1}}, model.QueryContext{TargetLevel: -1}, weights())
		signals := scored.Signals.Map()
		for name, value := range signals {
			if name == model.SignalTrajectoryFit {
				continue // trajectory has defined defaults, not a neutral
			}
			Expect(value).To(Equal(neutral), "signal %s", name)
		}
	})

	It("carries the retrieval rank through", func() {
		scored := scorer.Score(Input{Candidate: strongCandidate(), RetrievalRank: 17}, backendQuery, weights())
		Expect(scored.RetrievalRank).To(Equal(17))
	})

	It("uses enrichment hints when the title does not map", func() {
		c := &model.Candidate{ID: 3, CurrentTitle: "Code Whisperer"}
		hinted := scorer.Score(Input{Candidate: c, Hints: model.EnrichmentHints{Level: 3}}, backendQuery, weights())
		unhinted := scorer.Score(Input{Candidate: c, Hints: model.EnrichmentHints{Level: -1}}, backendQuery, weights())
		Expect(hinted.Signals.LevelMatch).To(Equal(1.0))
		Expect(unhinted.Signals.LevelMatch).To(Equal(neutral))
	})

	It("surfaces inferred skill matches in the breakdown", func() {
		c := &model.Candidate{
			ID:           9,
			CurrentTitle: "Backend Engineer",
			Skills:       []model.DeclaredSkill{{Name: "Django", Confidence: 1.0}},
		}
		scored := scorer.Score(Input{Candidate: c}, backendQuery, weights())
		Expect(scored.Signals.SkillsExact).To(BeZero())
		Expect(scored.Signals.SkillsInferred).To(BeNumerically(">", 0))
		Expect(scored.SkillMatches).NotTo(BeEmpty())
	})
})
