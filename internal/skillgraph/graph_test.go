package skillgraph

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func testNodes() []Node {
	return []Node{
		{ID: "python", Name: "Python", Aliases: []string{"py"}, RelatedSkillIDs: []string{"django", "flask"}, DemandTier: DemandTierCritical},
		{ID: "django", Name: "Django", RelatedSkillIDs: []string{"postgresql"}, DemandTier: DemandTierHigh},
		{ID: "flask", Name: "Flask"},
		{ID: "postgresql", Name: "PostgreSQL", Aliases: []string{"postgres", "psql"}},
		{ID: "redis", Name: "Redis"},
	}
}

var _ = Describe("Graph construction", func() {
	It("builds a graph from valid nodes", func() {
		g, err := New(testNodes())
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Len()).To(Equal(5))
	})

	It("rejects a dangling related-skill reference", func() {
		nodes := []Node{
			{ID: "go", Name: "Go", RelatedSkillIDs: []string{"does-not-exist"}},
		}
		_, err := New(nodes)
		Expect(err).To(MatchError(ContainSubstring("unknown related skill")))
	})

	It("rejects duplicate skill ids", func() {
		nodes := []Node{
			{ID: "go", Name: "Go"},
			{ID: "go", Name: "Golang"},
		}
		_, err := New(nodes)
		Expect(err).To(MatchError(ContainSubstring("duplicate skill id")))
	})

	It("rejects nodes without id or name", func() {
		_, err := New([]Node{{ID: "", Name: "Go"}})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Resolve", func() {
	var g *Graph

	BeforeEach(func() {
		var err error
		g, err = New(testNodes())
		Expect(err).NotTo(HaveOccurred())
	})

	It("resolves canonical names case-insensitively", func() {
		node, ok := g.Resolve("PYTHON")
		Expect(ok).To(BeTrue())
		Expect(node.ID).To(Equal("python"))
	})

	It("resolves aliases to the same node", func() {
		byAlias, ok := g.Resolve("psql")
		Expect(ok).To(BeTrue())
		byName, _ := g.Resolve("PostgreSQL")
		Expect(byAlias.ID).To(Equal(byName.ID))
	})

	It("misses unknown names without error", func() {
		_, ok := g.Resolve("cobol")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Normalize", func() {
	DescribeTable("normalizes skill names",
		func(input, expected string) {
			Expect(Normalize(input)).To(Equal(expected))
		},
		Entry("lowercases", "Python", "python"),
		Entry("trims whitespace", "  go  ", "go"),
		Entry("strips trailing punctuation", "node.js.", "node.js"),
		Entry("collapses hyphens to spaces", "machine-learning", "machine learning"),
		Entry("collapses underscores to spaces", "machine_learning", "machine learning"),
		Entry("keeps interior dots", "node.js", "node.js"),
		Entry("keeps plus signs", "C++", "c++"),
		Entry("keeps hash signs", "C#", "c#"),
		Entry("collapses repeated separators", "machine--learning", "machine learning"),
	)
})

var _ = Describe("RelatedIDs", func() {
	var g *Graph

	BeforeEach(func() {
		var err error
		g, err = New(testNodes())
		Expect(err).NotTo(HaveOccurred())
	})

	It("includes reverse edges so directed references traverse both ways", func() {
		// python → django is declared; django's neighbourhood must
		// contain python via the reverse index.
		Expect(g.RelatedIDs("django")).To(ContainElement("python"))
		Expect(g.RelatedIDs("python")).To(ContainElement("django"))
	})

	It("deduplicates mutual references", func() {
		nodes := []Node{
			{ID: "a", Name: "A", RelatedSkillIDs: []string{"b"}},
			{ID: "b", Name: "B", RelatedSkillIDs: []string{"a"}},
		}
		g2, err := New(nodes)
		Expect(err).NotTo(HaveOccurred())
		Expect(g2.RelatedIDs("a")).To(Equal([]string{"b"}))
	})

	It("returns nothing for isolated nodes", func() {
		Expect(g.RelatedIDs("redis")).To(BeEmpty())
	})
})
