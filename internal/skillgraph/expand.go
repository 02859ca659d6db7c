package skillgraph

import "sort"

// Relationship classifies how far a related skill sits from the seed.
type Relationship string

const (
	RelationshipDirect   Relationship = "direct"   // distance 1
	RelationshipIndirect Relationship = "indirect" // distance >= 2
)

// Confidence decay by graph distance, boosted for critical-demand skills.
const (
	directConfidence   = 0.9
	indirectConfidence = 0.6
	criticalTierBoost  = 0.1
)

// RelatedSkill is one expansion hit.
type RelatedSkill struct {
	SkillID      string       `json:"skill_id"`
	Name         string       `json:"name"`
	Relationship Relationship `json:"relationship"`
	Distance     int          `json:"distance"`
	Confidence   float64      `json:"confidence"`
}

// ExpansionResult is the ordered, capped set of skills related to a seed.
type ExpansionResult struct {
	OriginalSkill string         `json:"original_skill"`
	Related       []RelatedSkill `json:"related"`
}

// Expand walks the graph breadth-first from the resolved seed node up to
// maxDepth hops, collecting at most maxResults related skills. An unknown
// skill name yields an empty result, not an error: candidate and query data
// are untrusted and a miss is a normal outcome.
//
// Confidence is 0.9 at distance 1 and 0.6 beyond, +0.1 for critical-demand
// skills, clamped to 1.0. Results are sorted by confidence descending.
func (g *Graph) Expand(skillName string, maxDepth, maxResults int) ExpansionResult {
	result := ExpansionResult{OriginalSkill: skillName}
	if maxDepth < 1 || maxResults < 1 {
		return result
	}

	seed, ok := g.Resolve(skillName)
	if !ok {
		return result
	}

	type entry struct {
		id       string
		distance int
	}

	visited := map[string]bool{seed.ID: true}
	queue := []entry{{id: seed.ID, distance: 0}}

	for len(queue) > 0 && len(result.Related) < maxResults {
		current := queue[0]
		queue = queue[1:]

		if current.distance >= maxDepth {
			continue
		}
		next := current.distance + 1

		for _, neighborID := range g.RelatedIDs(current.id) {
			if visited[neighborID] {
				continue
			}
			visited[neighborID] = true

			neighbor, ok := g.nodes[neighborID]
			if !ok {
				continue
			}

			result.Related = append(result.Related, RelatedSkill{
				SkillID:      neighborID,
				Name:         neighbor.Name,
				Relationship: relationshipFor(next),
				Distance:     next,
				Confidence:   confidenceFor(next, neighbor.DemandTier),
			})
			if len(result.Related) >= maxResults {
				break
			}

			queue = append(queue, entry{id: neighborID, distance: next})
		}
	}

	sort.SliceStable(result.Related, func(i, j int) bool {
		a, b := result.Related[i], result.Related[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return a.Name < b.Name
	})

	return result
}

func relationshipFor(distance int) Relationship {
	if distance == 1 {
		return RelationshipDirect
	}
	return RelationshipIndirect
}

func confidenceFor(distance int, tier DemandTier) float64 {
	confidence := indirectConfidence
	if distance == 1 {
		confidence = directConfidence
	}
	if tier == DemandTierCritical {
		confidence += criticalTierBoost
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
