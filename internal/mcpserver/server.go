// Package mcpserver exposes the editable table as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/crewboard/internal/apperr"
	"github.com/starford/crewboard/internal/board"
	"github.com/starford/crewboard/internal/boardservice"
)

const formRulesURI = "crewboard://form-rules"

// Server wraps the MCP server with crewboard tools.
type Server struct {
	mcp *server.MCPServer
	svc *boardservice.Service
}

// New creates an MCP server with all board tools registered.
func New(svc *boardservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"crewboard",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_records",
		mcp.WithDescription("List the table's records in display order, with the current draft and status message."),
	), s.listRecords)

	s.mcp.AddTool(mcp.NewTool("set_field",
		mcp.WithDescription("Set one field of the draft form. Read "+formRulesURI+" for the field rules."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Field name: displayName, role, projectName, status or budget")),
		mcp.WithString("value", mcp.Required(), mcp.Description("New field value")),
	), s.setField)

	s.mcp.AddTool(mcp.NewTool("begin_edit",
		mcp.WithDescription("Load an existing record into the draft so the next commit updates it."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Record id")),
	), s.beginEdit)

	s.mcp.AddTool(mcp.NewTool("commit_draft",
		mcp.WithDescription("Commit the draft: adds a record, or updates the one being edited."),
	), s.commitDraft)

	s.mcp.AddTool(mcp.NewTool("request_delete",
		mcp.WithDescription("Ask to delete a record. Returns a token that confirm_delete needs."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Record id")),
	), s.requestDelete)

	s.mcp.AddTool(mcp.NewTool("confirm_delete",
		mcp.WithDescription("Delete the record behind a token from request_delete."),
		mcp.WithString("token", mcp.Required(), mcp.Description("Token returned by request_delete")),
	), s.confirmDelete)

	s.mcp.AddTool(mcp.NewTool("sort_records",
		mcp.WithDescription("Sort by display name, alternating ascending and descending."),
	), s.sortRecords)

	s.mcp.AddResource(
		mcp.NewResource(formRulesURI, "Form Rules",
			mcp.WithResourceDescription("How the draft form validates, commits, deletes and sorts."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormRules,
	)

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

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

// dispatch runs a and turns rejections into tool errors. Validation
// rejections also carry the form state so the caller can see the errors.
func (s *Server) dispatch(ctx context.Context, a board.Action, render func(boardservice.Result) any) *mcp.CallToolResult {
	res, err := s.svc.Dispatch(ctx, a)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) || errors.Is(err, apperr.ErrBlocked) {
			out, _ := json.Marshal(map[string]any{"error": err.Error(), "errors": res.View.Errors})
			return mcp.NewToolResultError(string(out))
		}
		return mcp.NewToolResultError(err.Error())
	}
	return jsonResult(render(res))
}

func (s *Server) listRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := s.svc.Snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(v), nil
}

func (s *Server) setField(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.dispatch(ctx, board.SetField{Name: name, Value: value}, func(r boardservice.Result) any {
		return map[string]any{"draft": r.View.Draft, "errors": r.View.Errors}
	}), nil
}

func (s *Server) beginEdit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.dispatch(ctx, board.BeginEdit{ID: int64(id)}, func(r boardservice.Result) any {
		return map[string]any{"draft": r.View.Draft, "editingId": r.View.EditingID}
	}), nil
}

func (s *Server) commitDraft(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.dispatch(ctx, board.Submit{}, func(r boardservice.Result) any {
		return map[string]any{"record": r.Outcome.Record, "message": r.View.Message}
	}), nil
}

func (s *Server) requestDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.dispatch(ctx, board.RequestDelete{ID: int64(id)}, func(r boardservice.Result) any {
		return map[string]any{"token": r.Outcome.Token, "record": r.Outcome.Record}
	}), nil
}

func (s *Server) confirmDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tok, err := req.RequireString("token")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.dispatch(ctx, board.ConfirmDelete{Token: board.Token(tok)}, func(r boardservice.Result) any {
		return map[string]any{"deleted": r.Outcome.Record.ID, "message": r.View.Message}
	}), nil
}

func (s *Server) sortRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.dispatch(ctx, board.InvokeSort{}, func(r boardservice.Result) any {
		return map[string]any{"applied": r.Outcome.Direction, "records": r.View.Records}
	}), nil
}

func (s *Server) readFormRules(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formRulesURI,
			MIMEType: "text/markdown",
			Text:     FormRulesContract,
		},
	}, nil
}

