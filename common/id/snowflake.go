package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node    *snowflake.Node
	initErr error
	once    sync.Once
)

// Init initializes the Snowflake node with the given node ID. Only the
// first call takes effect; later calls return the first call's error.
func Init(nodeID int64) error {
	once.Do(func() {
		node, initErr = snowflake.NewNode(nodeID)
	})
	return initErr
}

// New generates a new globally unique int64 ID using the Snowflake
// algorithm. IDs are time-ordered and unique across distributed
// instances. Callers that never ran Init get node 0, which keeps
// single-instance deployments working.
func New() int64 {
	// Node IDs within [0, 1023] cannot fail, so this never leaves node nil.
	_ = Init(0)
	return node.Generate().Int64()
}
