package idgen

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out unique booking-session ids.
type Generator interface {
	NewSessionID() string
}

// SnowflakeGenerator implements Generator using Twitter Snowflake
type SnowflakeGenerator struct {
	node *snowflake.Node
	mu   sync.Mutex
}

// NewSnowflakeGenerator initializes a new ID generator.
// nodeID must be unique per server instance (0-1023) to prevent collisions.
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &SnowflakeGenerator{
		node: node,
	}, nil
}

// NewSessionID returns the next id in base 10.
func (g *SnowflakeGenerator) NewSessionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return strconv.FormatInt(g.node.Generate().Int64(), 10)
}
