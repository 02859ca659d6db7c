package retrieval

import "sort"

// FusedHit is one candidate after rank fusion across methods.
type FusedHit struct {
	CandidateID int64
	Score       float64
	BestRank    int
	Methods     []string
	Similarity  float64
	HasSim      bool
}

// FuseRRF combines independently ranked lists with reciprocal rank fusion:
// each appearance contributes 1/(k+rank), so a candidate surfaced by both
// methods outranks one surfaced by either alone even when neither ranked
// it first. Ordering is deterministic: score desc, then best per-method
// rank, then candidate ID.
func FuseRRF(k int, lists ...[]Hit) []FusedHit {
	fused := make(map[int64]*FusedHit)

	for _, list := range lists {
		for _, hit := range list {
			f, ok := fused[hit.CandidateID]
			if !ok {
				f = &FusedHit{CandidateID: hit.CandidateID, BestRank: hit.Rank}
				fused[hit.CandidateID] = f
			}
			f.Score += 1.0 / float64(k+hit.Rank)
			if hit.Rank < f.BestRank {
				f.BestRank = hit.Rank
			}
			f.Methods = append(f.Methods, hit.Method)
			if hit.HasSim {
				f.Similarity = hit.Similarity
				f.HasSim = true
			}
		}
	}

	out := make([]FusedHit, 0, len(fused))
	for _, f := range fused {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].BestRank != out[j].BestRank {
			return out[i].BestRank < out[j].BestRank
		}
		return out[i].CandidateID < out[j].CandidateID
	})
	return out
}
