package retrieval

import (
	"github.com/typesense/typesense-go/v4/typesense/api"
	"github.com/typesense/typesense-go/v4/typesense/api/pointer"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("buildFilter", func() {
	It("returns empty for no filters", func() {
		Expect(buildFilter(nil)).To(Equal(""))
		Expect(buildFilter(map[string]string{})).To(Equal(""))
	})

	It("renders exact-match clauses in sorted order", func() {
		filter := buildFilter(map[string]string{
			"specialty": "backend",
			"country":   "BR",
		})
		Expect(filter).To(Equal("country:=BR && specialty:=backend"))
	})
})

var _ = Describe("vectorQuery", func() {
	It("renders the embedding with the neighbor count", func() {
		q := vectorQuery([]float32{0.5, -1, 0.25}, 300)
		Expect(q).To(Equal("embedding:([0.5,-1,0.25], k:300)"))
	})
})

var _ = Describe("toHits", func() {
	searcher := &TypesenseSearcher{collection: "candidates"}

	doc := func(id any) *map[string]any {
		return &map[string]any{"id": id}
	}

	It("assigns 1-based ranks in result order", func() {
		result := &api.SearchResult{Hits: &[]api.SearchResultHit{
			{Document: doc("11")},
			{Document: doc("22")},
		}}
		hits, err := searcher.toHits(result, MethodLexical)
		Expect(err).NotTo(HaveOccurred())
		Expect(hits).To(HaveLen(2))
		Expect(hits[0]).To(Equal(Hit{CandidateID: 11, Rank: 1, Method: MethodLexical}))
		Expect(hits[1].Rank).To(Equal(2))
	})

	It("converts vector distance to clamped similarity", func() {
		result := &api.SearchResult{Hits: &[]api.SearchResultHit{
			{Document: doc("1"), VectorDistance: pointer.Float32(0.2)},
			{Document: doc("2"), VectorDistance: pointer.Float32(1.4)},
		}}
		hits, err := searcher.toHits(result, MethodVector)
		Expect(err).NotTo(HaveOccurred())
		Expect(hits[0].HasSim).To(BeTrue())
		Expect(hits[0].Similarity).To(BeNumerically("~", 0.8, 1e-6))
		Expect(hits[1].Similarity).To(BeZero())
	})

	It("ignores distances on lexical hits", func() {
		result := &api.SearchResult{Hits: &[]api.SearchResultHit{
			{Document: doc("1"), VectorDistance: pointer.Float32(0.2)},
		}}
		hits, err := searcher.toHits(result, MethodLexical)
		Expect(err).NotTo(HaveOccurred())
		Expect(hits[0].HasSim).To(BeFalse())
	})

	It("accepts numeric document ids", func() {
		result := &api.SearchResult{Hits: &[]api.SearchResultHit{
			{Document: doc(float64(99))},
		}}
		hits, err := searcher.toHits(result, MethodLexical)
		Expect(err).NotTo(HaveOccurred())
		Expect(hits[0].CandidateID).To(Equal(int64(99)))
	})

	It("rejects non-numeric document ids", func() {
		result := &api.SearchResult{Hits: &[]api.SearchResultHit{
			{Document: doc("abc")},
		}}
		_, err := searcher.toHits(result, MethodLexical)
		Expect(err).To(MatchError(ContainSubstring("not numeric")))
	})

	It("tolerates nil results", func() {
		hits, err := searcher.toHits(nil, MethodLexical)
		Expect(err).NotTo(HaveOccurred())
		Expect(hits).To(BeEmpty())
	})
})
