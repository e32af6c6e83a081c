// Package idgen issues time-derived int64 identifiers.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out process-unique IDs.
type Generator interface {
	NextID() int64
}

// Snowflake is a Generator backed by a snowflake node. IDs from one node
// are unique and grow with creation time.
type Snowflake struct {
	node *snowflake.Node
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("creating snowflake node %d: %w", nodeID, err)
	}
	return &Snowflake{node: node}, nil
}

func (s *Snowflake) NextID() int64 {
	return s.node.Generate().Int64()
}

// Sequence is a deterministic Generator for tests and seeding.
type Sequence struct {
	next int64
}

func NewSequence(start int64) *Sequence {
	return &Sequence{next: start}
}

func (s *Sequence) NextID() int64 {
	id := s.next
	s.next++
	return id
}

var (
	_ Generator = (*Snowflake)(nil)
	_ Generator = (*Sequence)(nil)
)
