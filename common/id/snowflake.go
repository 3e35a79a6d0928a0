// Package id hands out the int64 identifiers persisted entities use.
// Ephemeral assessment sessions use uuids instead and never come
// through here.
package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init configures the Snowflake node. Call once at startup, before any
// New; the node ID distinguishes concurrent service instances and comes
// from configuration. Repeat calls are no-ops.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns a time-ordered int64 unique across instances that were
// initialized with distinct node IDs.
func New() int64 {
	return node.Generate().Int64()
}
