package main

// Tool argument and result shapes for the MCP bridge. The client library
// itself returns transport-decoded values; these types give the tools a
// stable JSON surface.

type VersionArgs struct{}

type VersionResult struct {
	Version string `json:"version"`
	Title   string `json:"title"`
}

type SearchArgs struct {
	Query string `json:"query" jsonschema:"required,description=Search query text"`
}

type SearchResult struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`
}

type SearchHit struct {
	ID      string `json:"id"`
	Score   int    `json:"score,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

type GetPageArgs struct {
	Page string `json:"page" jsonschema:"required,description=Page id (namespace:page)"`
}

type PageContent struct {
	Page    string `json:"page"`
	Content string `json:"content"`
}

type PutPageArgs struct {
	Page    string `json:"page" jsonschema:"required,description=Page id (namespace:page)"`
	Content string `json:"content" jsonschema:"required,description=New wikitext content"`
	Summary string `json:"summary,omitempty" jsonschema:"description=Change summary"`
	Minor   bool   `json:"minor,omitempty" jsonschema:"description=Mark as minor change"`
}

type PutPageResult struct {
	Page    string `json:"page"`
	Success bool   `json:"success"`
}

type ListPagesArgs struct {
	Namespace string `json:"namespace" jsonschema:"required,description=Namespace to list (use / for the wiki root)"`
	Depth     int    `json:"depth,omitempty" jsonschema:"description=Recursion level; 0 lists everything"`
}

type ListPagesResult struct {
	Namespace string        `json:"namespace"`
	Pages     []PageSummary `json:"pages"`
}

type PageSummary struct {
	ID   string `json:"id"`
	Rev  int    `json:"rev,omitempty"`
	Size int    `json:"size,omitempty"`
}

type PageInfoArgs struct {
	Page string `json:"page" jsonschema:"required,description=Page id (namespace:page)"`
}

type PageInfoResult struct {
	Name    string `json:"name"`
	Author  string `json:"author"`
	Version int    `json:"version"`
}

func searchHits(items []any) []SearchHit {
	hits := make([]SearchHit, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		hits = append(hits, SearchHit{
			ID:      getString(m, "id"),
			Score:   getInt(m, "score"),
			Snippet: getString(m, "snippet"),
		})
	}
	return hits
}

func pageSummaries(items []any) []PageSummary {
	pages := make([]PageSummary, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		pages = append(pages, PageSummary{
			ID:   getString(m, "id"),
			Rev:  getInt(m, "rev"),
			Size: getInt(m, "size"),
		})
	}
	return pages
}

func getString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func getInt(m map[string]any, key string) int {
	if n, ok := m[key].(int); ok {
		return n
	}
	return 0
}
