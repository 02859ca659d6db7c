package retrieval

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FuseRRF", func() {
	lexical := func(ids ...int64) []Hit {
		hits := make([]Hit, len(ids))
		for i, id := range ids {
			hits[i] = Hit{CandidateID: id, Rank: i + 1, Method: MethodLexical}
		}
		return hits
	}

	vector := func(ids ...int64) []Hit {
		hits := make([]Hit, len(ids))
		for i, id := range ids {
			hits[i] = Hit{
				CandidateID: id,
				Rank:        i + 1,
				Method:      MethodVector,
				Similarity:  1.0 - float64(i)*0.1,
				HasSim:      true,
			}
		}
		return hits
	}

	It("handles empty input", func() {
		Expect(FuseRRF(60)).To(BeEmpty())
		Expect(FuseRRF(60, nil, nil)).To(BeEmpty())
	})

	It("scores each appearance as 1/(k+rank)", func() {
		fused := FuseRRF(60, lexical(1), vector(1))
		Expect(fused).To(HaveLen(1))
		Expect(fused[0].Score).To(BeNumerically("~", 2.0/61.0, 1e-12))
		Expect(fused[0].Methods).To(ConsistOf(MethodLexical, MethodVector))
	})

	It("ranks a candidate found by both methods above single-method firsts", func() {
		// Candidate 3 is mid-list in both methods but the only overlap.
		fused := FuseRRF(60, lexical(1, 3, 5), vector(2, 3, 6))
		Expect(fused[0].CandidateID).To(Equal(int64(3)))
	})

	It("preserves similarity from the vector list", func() {
		fused := FuseRRF(60, lexical(7), vector(7))
		Expect(fused[0].HasSim).To(BeTrue())
		Expect(fused[0].Similarity).To(Equal(1.0))
	})

	It("leaves lexical-only hits without similarity", func() {
		fused := FuseRRF(60, lexical(9))
		Expect(fused[0].HasSim).To(BeFalse())
	})

	It("records the best per-method rank", func() {
		fused := FuseRRF(60, lexical(4, 8), vector(8, 4))
		for _, f := range fused {
			Expect(f.BestRank).To(Equal(1))
		}
	})

	It("breaks score ties deterministically by rank then ID", func() {
		// Two disjoint single-method hits at the same rank tie on score.
		fused := FuseRRF(60, lexical(20), vector(10))
		Expect(fused[0].CandidateID).To(Equal(int64(10)))
		Expect(fused[1].CandidateID).To(Equal(int64(20)))
	})

	It("orders by fused score descending", func() {
		fused := FuseRRF(60, lexical(1, 2, 3), vector(3, 2, 1))
		for i := 1; i < len(fused); i++ {
			Expect(fused[i-1].Score).To(BeNumerically(">=", fused[i].Score))
		}
	})

	It("uses a smaller k to sharpen rank differences", func() {
		sharp := FuseRRF(1, lexical(1, 2))
		smooth := FuseRRF(1000, lexical(1, 2))
		Expect(sharp[0].Score - sharp[1].Score).To(BeNumerically(">", smooth[0].Score-smooth[1].Score))
	})
})
