package scoring

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/delimatsuo/headhunter/internal/model"
)

var _ = Describe("Preset", func() {
	DescribeTable("every preset sums to 1.0",
		func(roleType model.RoleType) {
			Expect(Preset(roleType).Sum()).To(BeNumerically("~", 1.0, 1e-9))
		},
		Entry("default", model.RoleTypeDefault),
		Entry("executive", model.RoleTypeExecutive),
		Entry("manager", model.RoleTypeManager),
		Entry("ic", model.RoleTypeIC),
	)

	It("falls back to the default preset for unknown role types", func() {
		Expect(Preset("wizard")).To(Equal(Preset(model.RoleTypeDefault)))
		Expect(Preset("")).To(Equal(Preset(model.RoleTypeDefault)))
	})

	It("weights executives toward pedigree and seniority, ICs toward skills", func() {
		exec := Preset(model.RoleTypeExecutive)
		ic := Preset(model.RoleTypeIC)
		Expect(exec.CompanyPedigree).To(BeNumerically(">", ic.CompanyPedigree))
		Expect(ic.SkillsExact).To(BeNumerically(">", exec.SkillsExact))
		Expect(ic.TechStackMatch).To(BeNumerically(">", exec.TechStackMatch))
	})
})

var _ = Describe("ResolveWeights", func() {
	It("returns the untouched preset without overrides", func() {
		resolved, err := ResolveWeights(model.RoleTypeDefault, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(resolved).To(Equal(Preset(model.RoleTypeDefault)))
	})

	It("renormalizes after overrides so the sum stays 1.0", func() {
		resolved, err := ResolveWeights(model.RoleTypeDefault, map[string]float64{
			model.SignalSkillsExact:      0.5,
			model.SignalVectorSimilarity: 0.0,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(resolved.Sum()).To(BeNumerically("~", 1.0, 1e-9))
		Expect(resolved.VectorSimilarity).To(BeZero())
		Expect(resolved.SkillsExact).To(BeNumerically(">", resolved.LevelMatch))
	})

	It("keeps relative proportions between overridden signals", func() {
		resolved, err := ResolveWeights(model.RoleTypeIC, map[string]float64{
			model.SignalSkillsExact:    0.4,
			model.SignalTechStackMatch: 0.2,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(resolved.SkillsExact / resolved.TechStackMatch).To(BeNumerically("~", 2.0, 1e-9))
	})

	It("rejects unknown signal names", func() {
		_, err := ResolveWeights(model.RoleTypeDefault, map[string]float64{"charisma": 0.5})
		Expect(err).To(MatchError(ContainSubstring("unknown signal weight")))
	})

	It("rejects negative and non-finite values", func() {
		for _, bad := range []float64{-0.1, math.NaN(), math.Inf(1)} {
			_, err := ResolveWeights(model.RoleTypeDefault, map[string]float64{
				model.SignalSkillsExact: bad,
			})
			Expect(err).To(HaveOccurred())
		}
	})

	It("rejects overrides that zero out every signal", func() {
		overrides := make(map[string]float64, len(model.SignalNames))
		for _, name := range model.SignalNames {
			overrides[name] = 0
		}
		_, err := ResolveWeights(model.RoleTypeDefault, overrides)
		Expect(err).To(MatchError(ContainSubstring("sum to zero")))
	})
})
