// Package mcpserver exposes treegen to editors and agents as MCP tools over
// stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/agentic-research/treegen/internal/generator"
	"github.com/agentic-research/treegen/internal/materialize"
	"github.com/agentic-research/treegen/internal/scaffold"
)

// Server wires the tools to a Generator.
type Server struct {
	gen *generator.Generator
	// root confines generated output; relative bases resolve against it.
	root string
}

// New returns a Server writing below root.
func New(gen *generator.Generator, root string) *Server {
	return &Server{gen: gen, root: root}
}

// MCP builds the MCP server with every tool registered.
func (s *Server) MCP(version string) *server.MCPServer {
	srv := server.NewMCPServer("treegen", version, server.WithToolCapabilities(false))

	srv.AddTool(mcp.NewTool("preview_structure",
		mcp.WithDescription("Parse an ASCII tree diagram and show the files and directories it describes without writing anything."),
		mcp.WithString("diagram", mcp.Required(), mcp.Description("Tree diagram using ├── └── │ notation")),
		mcp.WithString("format", mcp.Description("Output format"), mcp.Enum("tree", "json")),
	), s.preview)

	srv.AddTool(mcp.NewTool("generate_structure",
		mcp.WithDescription("Create the directories and files described by an ASCII tree diagram."),
		mcp.WithString("diagram", mcp.Description("Tree diagram using ├── └── │ notation")),
		mcp.WithString("scaffold", mcp.Description("Name of a built-in project diagram, used when diagram is empty"),
			mcp.Enum(scaffold.Names()...)),
		mcp.WithString("base", mcp.Description("Target directory, relative to the server root")),
		mcp.WithBoolean("overwrite", mcp.Description("Replace files that already exist")),
	), s.generate)

	srv.AddTool(mcp.NewTool("list_scaffolds",
		mcp.WithDescription("List the built-in project diagrams."),
	), s.listScaffolds)

	return srv
}

// ServeStdio serves the tools on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio(version string) error {
	return server.ServeStdio(s.MCP(version))
}

func (s *Server) preview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	diagram, err := req.RequireString("diagram")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	plan := s.gen.Parse(diagram)
	if plan.Empty() {
		return mcp.NewToolResultError(generator.EmptyMessage), nil
	}
	if req.GetString("format", "tree") == "json" {
		data, err := json.MarshalIndent(s.gen.Structure(plan), "", "  ")
		if err != nil {
			return mcp.NewToolResultErrorFromErr("encode structure", err), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s\n%d files, %d directories",
		plan.Preview(""), plan.Totals.Files, plan.Totals.Dirs)), nil
}

func (s *Server) generate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	diagram := req.GetString("diagram", "")
	source := "mcp"
	if strings.TrimSpace(diagram) == "" {
		name := req.GetString("scaffold", "")
		if name == "" {
			return mcp.NewToolResultError("either diagram or scaffold is required"), nil
		}
		sc, err := scaffold.Lookup(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		diagram, source = sc.Diagram, "scaffold:"+name
	}

	base, err := s.resolveBase(req.GetString("base", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	gen := *s.gen
	if v, ok := req.GetArguments()["overwrite"].(bool); ok {
		gen.Settings.OverwriteExisting = v
	}

	plan := gen.Parse(diagram)
	if plan.Empty() {
		return mcp.NewToolResultError(generator.EmptyMessage), nil
	}

	var log []string
	rep, err := gen.Generate(ctx, plan, generator.Job{
		Source: source,
		Base:   base,
		Progress: func(e materialize.Event) {
			log = append(log, e.String())
		},
	})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("generation failed", err), nil
	}

	out := strings.Join(append(log, generator.Summary(rep, base)), "\n")
	for _, w := range rep.Warnings {
		out += "\nwarning: " + w.Error()
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) listScaffolds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, sc := range scaffold.All() {
		fmt.Fprintf(&b, "%s\t%s: %s\n", sc.Name, sc.Label, sc.Detail)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// resolveBase joins rel onto the server root and rejects paths that leave
// it. Symlinks in the existing part of the path are resolved first, so a
// link inside the root cannot point the write elsewhere.
func (s *Server) resolveBase(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("base must be relative to %s", s.root)
	}
	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	if root, err = filepath.EvalSymlinks(root); err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}

	base, err := realPath(filepath.Join(root, rel))
	if err != nil {
		return "", err
	}
	if base != root && !strings.HasPrefix(base, root+string(filepath.Separator)) {
		return "", fmt.Errorf("base %q escapes %s", rel, root)
	}
	return base, nil
}

// realPath resolves symlinks in the deepest existing ancestor of path and
// appends the part that does not exist yet.
func realPath(path string) (string, error) {
	var missing []string
	for p := path; ; p = filepath.Dir(p) {
		_, err := os.Lstat(p)
		if err == nil {
			resolved, err := filepath.EvalSymlinks(p)
			if err != nil {
				return "", fmt.Errorf("resolve %s: %w", p, err)
			}
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", p, err)
		}
		parent := filepath.Dir(p)
		if parent == p {
			return path, nil
		}
		missing = append(missing, filepath.Base(p))
	}
}
