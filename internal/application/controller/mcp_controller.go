package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type MCPController struct {
	api     *echo.Group
	handler http.Handler
}

// NewMCPController serves server over the streamable HTTP transport. Sessions are kept by the handler.
func NewMCPController(api *echo.Group, server *mcp.Server) *MCPController {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	return &MCPController{api: api, handler: handler}
}

// InitMCPRoutes initializes the MCP endpoint routes
func (controller *MCPController) InitMCPRoutes() {
	controller.api.Any("/mcp", echo.WrapHandler(controller.handler))
}
