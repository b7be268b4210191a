package mcptools

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tern-works/refit/internal/engine"
	"github.com/tern-works/refit/internal/textedit"
)

// Service holds the rewrite engine used by MCP tool handlers.
type Service struct {
	engine      *engine.Engine
	projectRoot string // relative tool paths are resolved against this
}

// NewService creates a Service backed by eng.
func NewService(eng *engine.Engine) *Service {
	return &Service{engine: eng}
}

// SetProjectRoot sets the directory relative tool paths resolve against.
func (s *Service) SetProjectRoot(root string) {
	s.projectRoot = root
}

// ListImports parses a file and returns every import statement it declares.
func (s *Service) ListImports(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListImportsInput,
) (*mcp.CallToolResult, ListImportsOutput, error) {
	path, err := s.resolve(input.Path)
	if err != nil {
		return nil, ListImportsOutput{}, err
	}
	records, err := s.engine.ListImports(ctx, path)
	if err != nil {
		return nil, ListImportsOutput{}, fmt.Errorf("list imports: %w", err)
	}
	return nil, ListImportsOutput{Imports: records, Total: len(records)}, nil
}

// PlanImportEdits computes the rewrite for a file without modifying it.
func (s *Service) PlanImportEdits(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlanImportEditsInput,
) (*mcp.CallToolResult, PlanImportEditsOutput, error) {
	req, err := s.request(input.Path, input.Removals, input.Renames, input.Add)
	if err != nil {
		return nil, PlanImportEditsOutput{}, err
	}
	res, err := s.engine.RewriteFile(ctx, req)
	if err != nil {
		return nil, PlanImportEditsOutput{}, fmt.Errorf("plan edits: %w", err)
	}
	return nil, PlanImportEditsOutput{
		Edits:     res.Edits,
		Workspace: textedit.ToWorkspaceEdit(res.Edits),
		Rewritten: res.Rewritten,
		Changed:   res.Changed(),
	}, nil
}

// ApplyImportEdits computes the rewrite for a file and writes it back.
func (s *Service) ApplyImportEdits(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ApplyImportEditsInput,
) (*mcp.CallToolResult, ApplyImportEditsOutput, error) {
	req, err := s.request(input.Path, input.Removals, input.Renames, input.Add)
	if err != nil {
		return nil, ApplyImportEditsOutput{}, err
	}
	res, err := s.engine.Apply(ctx, req)
	if err != nil {
		return nil, ApplyImportEditsOutput{}, fmt.Errorf("apply edits: %w", err)
	}
	return nil, ApplyImportEditsOutput{
		Changed:   res.Changed(),
		EditCount: len(res.Edits),
	}, nil
}

func (s *Service) request(path string, removals []engine.RemoveName, renames []engine.RenameModule, add []engine.AddImport) (engine.FileRequest, error) {
	resolved, err := s.resolve(path)
	if err != nil {
		return engine.FileRequest{}, err
	}
	return engine.FileRequest{
		Path:     resolved,
		Removals: removals,
		Renames:  renames,
		Add:      add,
	}, nil
}

func (s *Service) resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	if filepath.IsAbs(path) || s.projectRoot == "" {
		return path, nil
	}
	return filepath.Join(s.projectRoot, path), nil
}
