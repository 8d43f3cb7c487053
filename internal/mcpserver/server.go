// Package mcpserver exposes the converter as MCP (Model Context Protocol)
// tools over stdio, so assistants can render Lexical documents.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	lexical2html "github.com/alnah/go-lexical2html"
)

// Converter is the subset of *lexical2html.Converter the tools need.
type Converter interface {
	Convert(ctx context.Context, input lexical2html.Input) (*lexical2html.ConvertResult, error)
	CSS() string
}

// Server wraps the MCP server with conversion tools.
type Server struct {
	mcp  *server.MCPServer
	conv Converter
}

// New creates an MCP server with all tools registered.
func New(conv Converter, version string) *Server {
	s := &Server{conv: conv}

	s.mcp = server.NewMCPServer(
		"lexical2html",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("convert_lexical",
		mcp.WithDescription("Convert a Lexical editor JSON document to HTML. "+
			"Accepts {\"editorState\":{\"root\":...}} or {\"root\":...}. "+
			"Returns the HTML bundle followed by a stats line."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Lexical JSON document")),
		mcp.WithString("shape",
			mcp.Description("Bundle shape: fragment, style, full (default) or document"),
			mcp.Enum("fragment", "style", "full", "document"),
		),
		mcp.WithString("title", mcp.Description("Page title for the document shape")),
	), s.convertLexical)

	s.mcp.AddTool(mcp.NewTool("get_stylesheet",
		mcp.WithDescription("Returns the CSS that styles converted HTML. "+
			"Wrap the HTML in an element with the matching class to apply it."),
	), s.getStylesheet)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) convertLexical(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	document, err := req.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := lexical2html.Input{JSON: []byte(document)}
	if shape, err := req.RequireString("shape"); err == nil {
		input.Shape = lexical2html.Shape(shape)
	}
	if title, err := req.RequireString("title"); err == nil {
		input.Title = title
	}

	res, err := s.conv.Convert(ctx, input)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(res.Bundle + "\n\n" + statsLine(res.Stats)), nil
}

func (s *Server) getStylesheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.conv.CSS()), nil
}

// statsLine summarizes a conversion, e.g. "<!-- nodes: 12, warnings: 1 (Unknown node type: x) -->".
func statsLine(st lexical2html.Stats) string {
	line := fmt.Sprintf("nodes: %d, warnings: %d", st.NodeCount, len(st.Errors))
	if len(st.Errors) > 0 {
		line += " (" + strings.Join(st.Errors, "; ") + ")"
	}
	return "<!-- " + strings.ReplaceAll(line, "--", "- -") + " -->"
}
