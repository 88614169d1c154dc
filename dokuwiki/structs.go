package dokuwiki

import "context"

// Structs groups the struct plugin methods
// (https://www.dokuwiki.org/plugin:struct) of a wiki.
type Structs struct {
	client *Client
}

// GetData returns the structured data of a page. schema narrows the
// result to one schema; timestamp selects a revision (0 for current).
func (s *Structs) GetData(ctx context.Context, page, schema string, timestamp int) (any, error) {
	return s.client.Invoke(ctx, "plugin.struct.getData", []any{page, schema, timestamp}, nil)
}

// SaveData saves structured data for a page, creating a new revision.
func (s *Structs) SaveData(ctx context.Context, page string, data map[string]any, summary string, minor bool) (any, error) {
	return s.client.Invoke(ctx, "plugin.struct.saveData", []any{page, data, summary, minor}, nil)
}

// GetSchema returns information about existing schema columns. An empty
// name reports all schemas.
func (s *Structs) GetSchema(ctx context.Context, name string) (any, error) {
	return s.client.Invoke(ctx, "plugin.struct.getSchema", []any{name}, nil)
}

// GetAggregationData returns the data an aggregation over the given
// schemas and columns would display.
func (s *Structs) GetAggregationData(ctx context.Context, schemas, columns, filter []string, sort string) (any, error) {
	if filter == nil {
		filter = []string{}
	}
	return s.client.Invoke(ctx, "plugin.struct.getAggregationData",
		[]any{schemas, columns, filter, sort}, nil)
}
