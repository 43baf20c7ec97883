package frontend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterMCP registers the read-only wiki tools on an MCP server.
// Mutating operations stay HTTP-only: the session gate lives there.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerSearchTool(srv)
	s.registerPageTool(srv)
	s.registerHistoryTool(srv)
}

func inputSchema(properties map[string]any, required []string) json.RawMessage {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	data, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("frontend: marshal input schema: %v", err))
	}
	return data
}

func textResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		var res mcp.CallToolResult
		res.SetError(fmt.Errorf("marshal: %w", err))
		return &res, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

func errorResult(err error) (*mcp.CallToolResult, error) {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res, nil
}

func (s *Service) registerSearchTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "wiki_search",
		Description: "Full-text search over wiki pages",
		InputSchema: inputSchema(map[string]any{
			"query": map[string]any{"type": "string", "description": "Search query"},
		}, []string{"query"}),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var p struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(req.Params.Arguments, &p); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err))
		}
		results, err := s.engine.Search(ctx, p.Query)
		if err != nil {
			return errorResult(err)
		}
		return textResult(results)
	})
}

func (s *Service) registerPageTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "wiki_page",
		Description: "Read a wiki page, optionally pinned to a 40-hex revision id",
		InputSchema: inputSchema(map[string]any{
			"name":     map[string]any{"type": "string", "description": "Page name"},
			"revision": map[string]any{"type": "string", "description": "Optional revision id"},
		}, []string{"name"}),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var p struct {
			Name     string `json:"name"`
			Revision string `json:"revision"`
		}
		if err := json.Unmarshal(req.Params.Arguments, &p); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err))
		}
		page, err := s.engine.FindPage(ctx, p.Name, p.Revision)
		if err != nil {
			return errorResult(err)
		}
		if page == nil {
			return errorResult(fmt.Errorf("no page named %q", p.Name))
		}
		return textResult(map[string]string{
			"name":     page.Name,
			"format":   page.Format,
			"raw":      page.Raw,
			"revision": page.Revision,
		})
	})
}

func (s *Service) registerHistoryTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "wiki_history",
		Description: "List one newest-first window of a page's revisions",
		InputSchema: inputSchema(map[string]any{
			"name": map[string]any{"type": "string", "description": "Page name"},
			"page": map[string]any{"type": "integer", "description": "1-based history window"},
		}, []string{"name"}),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var p struct {
			Name string `json:"name"`
			Page int    `json:"page"`
		}
		if err := json.Unmarshal(req.Params.Arguments, &p); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err))
		}
		revs, err := s.History(ctx, p.Name, p.Page)
		if err != nil {
			return errorResult(err)
		}
		return textResult(revs)
	})
}
