package skillgraph

import (
	"fmt"
	"strings"
)

// DemandTier affects confidence decay during expansion: skills the market
// considers critical get a confidence boost.
type DemandTier string

const (
	DemandTierNormal   DemandTier = "normal"
	DemandTierHigh     DemandTier = "high"
	DemandTierCritical DemandTier = "critical"
)

// Node is one skill in the taxonomy. RelatedSkillIDs edges are directed and
// possibly asymmetric; the reverse index built at load restores symmetry for
// traversal.
type Node struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Aliases         []string   `json:"aliases,omitempty"`
	RelatedSkillIDs []string   `json:"related_skill_ids,omitempty"`
	DemandTier      DemandTier `json:"demand_tier,omitempty"`
}

// Graph is the process-wide skill taxonomy: constructed once at startup,
// read-only afterwards, shared by reference. No per-request mutation.
type Graph struct {
	nodes   map[string]*Node
	byName  map[string]string   // normalized name/alias → node ID
	forward map[string][]string // declared related edges
	reverse map[string][]string // derived at load, never mutated after
}

// New builds the graph and its reverse adjacency index. It fails if any
// related-skill reference does not resolve to a known node: the taxonomy is
// trusted configuration, so a dangling edge is a startup error, not a
// runtime default.
func New(nodes []Node) (*Graph, error) {
	g := &Graph{
		nodes:   make(map[string]*Node, len(nodes)),
		byName:  make(map[string]string, len(nodes)*2),
		forward: make(map[string][]string, len(nodes)),
		reverse: make(map[string][]string, len(nodes)),
	}

	for i := range nodes {
		n := nodes[i]
		if n.ID == "" || n.Name == "" {
			return nil, fmt.Errorf("skill node %d: id and name are required", i)
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate skill id %q", n.ID)
		}
		g.nodes[n.ID] = &n
		g.byName[Normalize(n.Name)] = n.ID
		for _, alias := range n.Aliases {
			g.byName[Normalize(alias)] = n.ID
		}
	}

	for id, n := range g.nodes {
		for _, rel := range n.RelatedSkillIDs {
			if _, ok := g.nodes[rel]; !ok {
				return nil, fmt.Errorf("skill %q references unknown related skill %q", id, rel)
			}
			g.forward[id] = append(g.forward[id], rel)
			g.reverse[rel] = append(g.reverse[rel], id)
		}
	}

	return g, nil
}

// Node returns the node for an ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Resolve maps a free-form skill name or alias to its node.
func (g *Graph) Resolve(name string) (*Node, bool) {
	id, ok := g.byName[Normalize(name)]
	if !ok {
		return nil, false
	}
	return g.nodes[id], true
}

// RelatedIDs returns the forward ∪ reverse neighbourhood of a node,
// deduplicated, so that a directed "Django → Python" edge makes Python
// reachable from Django and vice versa.
func (g *Graph) RelatedIDs(id string) []string {
	fwd := g.forward[id]
	rev := g.reverse[id]
	if len(rev) == 0 {
		return fwd
	}

	seen := make(map[string]bool, len(fwd)+len(rev))
	out := make([]string, 0, len(fwd)+len(rev))
	for _, lists := range [][]string{fwd, rev} {
		for _, rel := range lists {
			if !seen[rel] {
				seen[rel] = true
				out = append(out, rel)
			}
		}
	}
	return out
}

// Len returns the number of skills in the taxonomy.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Normalize lowercases and strips surrounding noise so "Node.JS", "nodejs"
// and " node.js " compare equal. Interior tech punctuation (+ # .) is kept
// to preserve names like "c++" and "c#".
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Trim(s, ".,;:!?\"'()[]")
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '-' || r == '_':
			if !prevSpace && b.Len() > 0 {
				b.WriteByte(' ')
				prevSpace = true
			}
		default:
			b.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}
