package schema

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

const (
	tableCacheSize  = 64
	columnCacheSize = 128
)

// Capabilities memoizes schema-presence checks for the lifetime of the
// process. Deployments vary: optional tables and columns may be absent, and
// every read that touches one is gated through this cache. There is no TTL
// and no invalidation; a schema change requires a restart.
//
// Lookup failures are swallowed and reported as "not present" so a flaky
// metadata read degrades the affected section instead of failing the request.
// Errored lookups are not cached and will be retried on the next call.
type Capabilities struct {
	introspector Introspector
	logger       *logrus.Logger
	tables       *lru.Cache[string, bool]
	columns      *lru.Cache[string, bool]
}

func NewCapabilities(introspector Introspector, logger *logrus.Logger) *Capabilities {
	tables, _ := lru.New[string, bool](tableCacheSize)
	columns, _ := lru.New[string, bool](columnCacheSize)
	return &Capabilities{
		introspector: introspector,
		logger:       logger,
		tables:       tables,
		columns:      columns,
	}
}

// HasTable reports whether the deployment's schema contains table.
func (c *Capabilities) HasTable(ctx context.Context, table string) bool {
	if v, ok := c.tables.Get(table); ok {
		return v
	}
	exists, err := c.introspector.TableExists(ctx, table)
	if err != nil {
		c.logger.WithError(err).WithField("table", table).
			Debug("table introspection failed, treating as absent")
		return false
	}
	c.tables.Add(table, exists)
	return exists
}

// HasColumn reports whether table carries column. Unknown tables and lookup
// failures both come back false.
func (c *Capabilities) HasColumn(ctx context.Context, table, column string) bool {
	key := table + ":" + column
	if v, ok := c.columns.Get(key); ok {
		return v
	}
	exists, err := c.introspector.ColumnExists(ctx, table, column)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"table":  table,
			"column": column,
		}).Debug("column introspection failed, treating as absent")
		return false
	}
	c.columns.Add(key, exists)
	return exists
}
