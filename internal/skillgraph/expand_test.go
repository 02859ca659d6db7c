package skillgraph

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Expand", func() {
	var g *Graph

	BeforeEach(func() {
		var err error
		g, err = LoadTaxonomy("")
		Expect(err).NotTo(HaveOccurred())
	})

	It("returns an empty result for unknown skills", func() {
		result := g.Expand("underwater basket weaving", 2, 10)
		Expect(result.Related).To(BeEmpty())
		Expect(result.OriginalSkill).To(Equal("underwater basket weaving"))
	})

	It("finds Python from Django through the reverse index", func() {
		result := g.Expand("Django", 1, 10)
		names := relatedNames(result)
		Expect(names).To(ContainElement("Python"))
	})

	It("finds Django from Python through the forward edge", func() {
		result := g.Expand("Python", 1, 10)
		Expect(relatedNames(result)).To(ContainElement("Django"))
	})

	It("never includes the seed skill itself", func() {
		result := g.Expand("Python", 2, 50)
		Expect(relatedNames(result)).NotTo(ContainElement("Python"))
	})

	It("caps results at maxResults", func() {
		result := g.Expand("Python", 2, 3)
		Expect(len(result.Related)).To(BeNumerically("<=", 3))
	})

	It("respects maxDepth", func() {
		shallow := g.Expand("Django", 1, 50)
		for _, r := range shallow.Related {
			Expect(r.Distance).To(Equal(1))
			Expect(r.Relationship).To(Equal(RelationshipDirect))
		}
	})

	It("keeps every confidence in (0, 1] at any depth", func() {
		for _, seed := range []string{"Python", "Django", "Kubernetes", "React", "AWS"} {
			result := g.Expand(seed, 3, 50)
			for _, r := range result.Related {
				Expect(r.Confidence).To(BeNumerically(">", 0), "seed %s related %s", seed, r.Name)
				Expect(r.Confidence).To(BeNumerically("<=", 1), "seed %s related %s", seed, r.Name)
				Expect(r.Distance).To(BeNumerically(">=", 1))
				Expect(r.Distance).To(BeNumerically("<=", 3))
			}
		}
	})

	It("boosts critical-demand skills and clamps at 1.0", func() {
		// Python is critical: direct neighbours of Django include it at
		// 0.9 + 0.1 = 1.0, never more.
		result := g.Expand("Django", 1, 10)
		for _, r := range result.Related {
			if r.Name == "Python" {
				Expect(r.Confidence).To(Equal(1.0))
			}
		}
	})

	It("sorts by confidence descending", func() {
		result := g.Expand("Python", 2, 20)
		for i := 1; i < len(result.Related); i++ {
			Expect(result.Related[i-1].Confidence).To(BeNumerically(">=", result.Related[i].Confidence))
		}
	})

	It("marks distance-2 hits as indirect with decayed confidence", func() {
		result := g.Expand("Django", 2, 50)
		for _, r := range result.Related {
			if r.Distance == 2 {
				Expect(r.Relationship).To(Equal(RelationshipIndirect))
				Expect(r.Confidence).To(BeNumerically("<=", 0.7))
			}
		}
	})

	It("returns empty for non-positive depth or result caps", func() {
		Expect(g.Expand("Python", 0, 10).Related).To(BeEmpty())
		Expect(g.Expand("Python", 2, 0).Related).To(BeEmpty())
	})
})

func relatedNames(result ExpansionResult) []string {
	names := make([]string, 0, len(result.Related))
	for _, r := range result.Related {
		names = append(names, r.Name)
	}
	return names
}
