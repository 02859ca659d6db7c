package skillgraph

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed taxonomy.json
var defaultTaxonomyJSON []byte

type taxonomyFile struct {
	Skills []Node `json:"skills"`
}

// LoadTaxonomy reads skill nodes from path, or from the embedded seed
// taxonomy when path is empty, and builds the graph. Called once at process
// start; the resulting graph is immutable.
func LoadTaxonomy(path string) (*Graph, error) {
	data := defaultTaxonomyJSON
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading taxonomy %s: %w", path, err)
		}
	}

	var file taxonomyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing taxonomy: %w", err)
	}
	if len(file.Skills) == 0 {
		return nil, fmt.Errorf("taxonomy contains no skills")
	}

	graph, err := New(file.Skills)
	if err != nil {
		return nil, fmt.Errorf("building skill graph: %w", err)
	}
	return graph, nil
}
