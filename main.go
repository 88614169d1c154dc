// DokuWiki MCP bridge - a Model Context Protocol server exposing a
// DokuWiki wiki through the XML-RPC client in this module.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/wikitools/go-dokuwiki/dokuwiki"
	"github.com/wikitools/go-dokuwiki/tracing"
)

const (
	ServerName    = "dokuwiki-mcp"
	ServerVersion = "1.0.0"
)

// recoverPanic wraps a tool handler with panic recovery so a bad response
// shape cannot crash the bridge
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()

	shutdown, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() { _ = shutdown(ctx) }()

	// Load configuration from environment
	config, err := dokuwiki.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the wiki
	client, err := dokuwiki.New(ctx, config, logger)
	if err != nil {
		log.Fatalf("Failed to connect to wiki: %v", err)
	}

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger: logger,
		Instructions: `DokuWiki MCP bridge provides tools for interacting with a DokuWiki wiki.

Available tools:
- dokuwiki_get_version: Get the wiki's DokuWiki version and title
- dokuwiki_search: Full-text search across wiki pages
- dokuwiki_get_page: Get the wikitext content of a page
- dokuwiki_put_page: Create or replace a page (requires credentials)
- dokuwiki_list_pages: List pages of a namespace
- dokuwiki_page_info: Get metadata about a page

Configure via environment variables:
- DOKUWIKI_URL: Wiki URL (e.g. https://wiki.example.com/dokuwiki)
- DOKUWIKI_USER: Wiki login
- DOKUWIKI_PASSWORD: Wiki password
- DOKUWIKI_COOKIE_AUTH: "true" for cookie-based sessions`,
	})

	registerTools(server, client, logger)

	logger.Info("Starting DokuWiki MCP bridge",
		"name", ServerName,
		"version", ServerVersion,
		"wiki_url", config.URL,
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func registerTools(server *mcp.Server, client *dokuwiki.Client, logger *slog.Logger) {
	// Wiki version and title
	mcp.AddTool(server, &mcp.Tool{
		Name:        "dokuwiki_get_version",
		Description: "Get the DokuWiki version and title of the remote wiki.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Get Wiki Version",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, args VersionArgs) (*mcp.CallToolResult, VersionResult, error) {
		defer recoverPanic(logger, "get_version")
		version, err := client.Version(ctx)
		if err != nil {
			return nil, VersionResult{}, fmt.Errorf("failed to get version: %w", err)
		}
		title, err := client.Title(ctx)
		if err != nil {
			return nil, VersionResult{}, fmt.Errorf("failed to get title: %w", err)
		}
		logger.Info("Tool executed", "tool", "dokuwiki_get_version", "version", version)
		return nil, VersionResult{Version: version, Title: title}, nil
	})

	// Full-text search
	mcp.AddTool(server, &mcp.Tool{
		Name:        "dokuwiki_search",
		Description: "Full-text search across wiki pages. Returns the first 15 hits with page ids and snippets.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Search Wiki",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, SearchResult, error) {
		defer recoverPanic(logger, "search")
		hits, err := client.Pages.Search(ctx, args.Query)
		if err != nil {
			return nil, SearchResult{}, fmt.Errorf("search failed: %w", err)
		}
		result := SearchResult{Query: args.Query, Hits: searchHits(hits)}
		logger.Info("Tool executed",
			"tool", "dokuwiki_search",
			"query", args.Query,
			"results_count", len(result.Hits),
		)
		return nil, result, nil
	})

	// Get page content
	mcp.AddTool(server, &mcp.Tool{
		Name:        "dokuwiki_get_page",
		Description: "Retrieve the wikitext content of a page.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Get Page",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GetPageArgs) (*mcp.CallToolResult, PageContent, error) {
		defer recoverPanic(logger, "get_page")
		content, err := client.Pages.Get(ctx, args.Page)
		if err != nil {
			return nil, PageContent{}, fmt.Errorf("failed to get page: %w", err)
		}
		logger.Info("Tool executed",
			"tool", "dokuwiki_get_page",
			"page", args.Page,
			"output_chars", len(content),
		)
		return nil, PageContent{Page: args.Page, Content: content}, nil
	})

	// Put page content
	mcp.AddTool(server, &mcp.Tool{
		Name:        "dokuwiki_put_page",
		Description: "Create or replace the content of a page. WARNING: overwrites existing content. Requires DOKUWIKI_USER and DOKUWIKI_PASSWORD.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Put Page",
			ReadOnlyHint:    false,
			DestructiveHint: ptr(true),
			IdempotentHint:  true,
			OpenWorldHint:   ptr(true),
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PutPageArgs) (*mcp.CallToolResult, PutPageResult, error) {
		defer recoverPanic(logger, "put_page")
		opts := &dokuwiki.EditOptions{Summary: args.Summary, Minor: args.Minor}
		if err := client.Pages.Set(ctx, args.Page, args.Content, opts); err != nil {
			return nil, PutPageResult{}, fmt.Errorf("failed to put page: %w", err)
		}
		logger.Info("Tool executed",
			"tool", "dokuwiki_put_page",
			"page", args.Page,
			"input_chars", len(args.Content),
		)
		return nil, PutPageResult{Page: args.Page, Success: true}, nil
	})

	// List pages of a namespace
	mcp.AddTool(server, &mcp.Tool{
		Name:        "dokuwiki_list_pages",
		Description: "List pages of a namespace. Set depth=0 to recurse through all sub-namespaces.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "List Pages",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListPagesArgs) (*mcp.CallToolResult, ListPagesResult, error) {
		defer recoverPanic(logger, "list_pages")
		opts := &dokuwiki.ListOptions{Depth: &args.Depth}
		pages, err := client.Pages.List(ctx, args.Namespace, opts)
		if err != nil {
			return nil, ListPagesResult{}, fmt.Errorf("failed to list pages: %w", err)
		}
		result := ListPagesResult{Namespace: args.Namespace, Pages: pageSummaries(pages)}
		logger.Info("Tool executed",
			"tool", "dokuwiki_list_pages",
			"namespace", args.Namespace,
			"pages_returned", len(result.Pages),
		)
		return nil, result, nil
	})

	// Page metadata
	mcp.AddTool(server, &mcp.Tool{
		Name:        "dokuwiki_page_info",
		Description: "Get metadata about the last version of a page (author, version, modification time).",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Get Page Info",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PageInfoArgs) (*mcp.CallToolResult, PageInfoResult, error) {
		defer recoverPanic(logger, "page_info")
		info, err := client.Pages.Info(ctx, args.Page)
		if err != nil {
			return nil, PageInfoResult{}, fmt.Errorf("failed to get page info: %w", err)
		}
		result := PageInfoResult{
			Name:    getString(info, "name"),
			Author:  getString(info, "author"),
			Version: getInt(info, "version"),
		}
		logger.Info("Tool executed",
			"tool", "dokuwiki_page_info",
			"page", args.Page,
			"version", result.Version,
		)
		return nil, result, nil
	})
}

func ptr[T any](v T) *T {
	return &v
}
