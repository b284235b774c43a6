package bridge

import (
	"context"
	"encoding/json"

	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/tool"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer exposes one agent's tools as an MCP server. Calls are dispatched
// as the agent; sessionID scopes what set_memory writes.
func NewMCPServer(name, version string, a entity.Agent, dispatcher *tool.Dispatcher, sessionID string) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(false),
	)

	for _, t := range a.Tools {
		schema, err := t.ParametersJSON()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode parameters of %s", t.Name)
		}
		s.AddTool(mcp.NewToolWithRawSchema(t.Name, t.Description, schema), mcpToolHandler(a, dispatcher, sessionID))
	}

	return s, nil
}

func ServeMCP(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func mcpToolHandler(a entity.Agent, dispatcher *tool.Dispatcher, sessionID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if sessionID != "" {
			ctx = tool.WithSessionID(ctx, sessionID)
		}
		result, err := dispatcher.Dispatch(ctx, a, tool.Call{
			Name:      request.Params.Name,
			Arguments: args,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		output, err := json.Marshal(result.Output)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(output)), nil
	}
}
