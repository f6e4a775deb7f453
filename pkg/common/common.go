package common

import (
	"os"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const (
	// ProductIDPrefix prefixes every generated product id.
	ProductIDPrefix = "prod"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// idNode lazily creates the snowflake node. The node number comes from
// VITRINE_NODE_ID so several instances sharing a store do not collide.
func idNode() *snowflake.Node {
	nodeOnce.Do(func() {
		var nodeID int64 = 1
		if v := strings.TrimSpace(os.Getenv("VITRINE_NODE_ID")); v != "" {
			id, err := cast.ToInt64E(v)
			if err != nil || id < 0 || id > 1023 {
				zap.S().Warnf("invalid VITRINE_NODE_ID %q, using 1", v)
				id = 1
			}
			nodeID = id
		}
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			panic(err)
		}
		node = n
	})
	return node
}

// ProductID returns a fresh timestamp-derived product id such as "prod1757000000000000000".
func ProductID() string {
	return ProductIDPrefix + idNode().Generate().String()
}

// IsEmpty reports whether s is empty once surrounding whitespace is removed.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsNotEmpty is the negation of IsEmpty.
func IsNotEmpty(s string) bool {
	return !IsEmpty(s)
}
