package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"weather-mcp/pkg/log"
	"weather-mcp/pkg/msg"
)

// NewServer creates the MCP server that tools and resources are registered on.
// Every request received from a client is logged with its method and latency.
func NewServer(name string, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)
	server.AddReceivingMiddleware(requestLogger)
	return server
}

func requestLogger(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		start := time.Now()
		result, err := next(ctx, method, req)
		latency := time.Since(start)

		fields := append(requestFields(req), zap.String("method", method), zap.Duration("latency", latency))
		if err != nil {
			log.Error(msg.GetMessage("app.mcp.call-fail", method, latency, err), append(fields, zap.Error(err))...)
			return result, err
		}

		log.Info(msg.GetMessage("app.mcp.call", method, latency), fields...)
		return result, nil
	}
}

func requestFields(req mcp.Request) []zap.Field {
	switch r := req.(type) {
	case *mcp.CallToolRequest:
		if r.Params != nil {
			return []zap.Field{zap.String("tool", r.Params.Name)}
		}
	case *mcp.ReadResourceRequest:
		if r.Params != nil {
			return []zap.Field{zap.String("uri", r.Params.URI)}
		}
	}
	return nil
}
