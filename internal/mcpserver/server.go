// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the phonebook to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/phonebook/internal/phonebook"
)

// RulesURI identifies the reconciliation rules resource.
const RulesURI = "phonebook://rules"

// Server wraps the MCP server with phonebook tools.
type Server struct {
	mcp *server.MCPServer
	app *phonebook.App

	// mu serialises tool calls; each call reloads the directory and its
	// prompt answers travel in the call context.
	mu sync.Mutex
}

// New creates a new MCP server backed by remote. opts are applied to the
// underlying phonebook.App; its prompter is always the per-call one.
func New(remote phonebook.Remote, opts ...phonebook.Option) *Server {
	opts = append(opts, phonebook.WithPrompter(callPrompter{}))
	s := &Server{app: phonebook.New(remote, opts...)}

	s.mcp = server.NewMCPServer(
		"Phonebook",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_contacts",
		mcp.WithDescription("List phonebook contacts. With a filter, only names containing it (case-insensitive) are returned."),
		mcp.WithString("filter", mcp.Description("Case-insensitive name fragment (empty for all)")),
	), s.listContacts)

	s.mcp.AddTool(mcp.NewTool("add_contact",
		mcp.WithDescription("Add a contact. If the name already exists with another number, "+
			"the number is replaced only when replace is true. Read "+RulesURI+" for the full rules."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Contact name, matched exactly")),
		mcp.WithString("number", mcp.Required(), mcp.Description("Phone number")),
		mcp.WithBoolean("replace", mcp.Description("Replace the number of an existing contact with the same name")),
	), s.addContact)

	s.mcp.AddTool(mcp.NewTool("delete_contact",
		mcp.WithDescription("Delete the contact with the given name. Nothing is deleted unless confirm is true."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Contact name, matched exactly")),
		mcp.WithBoolean("confirm", mcp.Description("Must be true to delete")),
	), s.deleteContact)

	s.mcp.AddResource(
		mcp.NewResource(RulesURI, "Phonebook Rules",
			mcp.WithResourceDescription("How submitted names are reconciled with the directory."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRulesResource,
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

func (s *Server) listContacts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.app.Load(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.app.SetFilter(req.GetString("filter", ""))

	out, err := json.MarshalIndent(s.app.State().Visible(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode contacts: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addContact(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	number, err := req.RequireString("number")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.app.Load(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ctx, log := withAnswer(ctx, req.GetBool("replace", false))
	before := s.app.State().Notice.Generation
	err = s.app.Submit(ctx, name, number)
	return s.result(log, before, err), nil
}

func (s *Server) deleteContact(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.app.Load(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var target *phonebook.Contact
	for _, c := range s.app.State().Contacts {
		if c.Name == name {
			target = &c
			break
		}
	}
	if target == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no contact named %q", name)), nil
	}

	confirm := req.GetBool("confirm", false)
	ctx, log := withAnswer(ctx, confirm)
	before := s.app.State().Notice.Generation
	err = s.app.Delete(ctx, *target)
	if err == nil && confirm && s.app.State().Notice.Generation == before {
		log.add("Deleted " + target.Name)
	}
	return s.result(log, before, err), nil
}

// result renders everything the user would have seen during a call:
// questions with their answers, alerts, and a notification newer than
// generation before.
func (s *Server) result(log *promptLog, before uint64, err error) *mcp.CallToolResult {
	lines := log.lines()
	if n := s.app.State().Notice; n.Visible() && n.Generation != before {
		lines = append(lines, n.Text)
	}
	text := strings.Join(lines, "\n")
	if err != nil {
		if errors.Is(err, phonebook.ErrMissingField) && text == "" {
			text = err.Error()
		}
		return mcp.NewToolResultError(text)
	}
	return mcp.NewToolResultText(text)
}

func (s *Server) readRulesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      RulesURI,
			MIMEType: "text/markdown",
			Text:     Rules,
		},
	}, nil
}
