package mcptools

import (
	"github.com/tern-works/refit/internal/engine"
	"github.com/tern-works/refit/internal/textedit"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// ListImportsInput is the input for the list_imports MCP tool.
type ListImportsInput struct {
	Path string `json:"path" jsonschema:"path to the Python source file, absolute or relative to the project root"`
}

// ListImportsOutput is the result of the list_imports MCP tool.
type ListImportsOutput struct {
	Imports []engine.ImportRecord `json:"imports"`
	Total   int                   `json:"total"`
}

// PlanImportEditsInput is the input for the plan_import_edits MCP tool.
type PlanImportEditsInput struct {
	Path     string                `json:"path" jsonschema:"path to the Python source file, absolute or relative to the project root"`
	Removals []engine.RemoveName   `json:"removals,omitempty" jsonschema:"imported names to remove; omit name to remove a plain module import"`
	Renames  []engine.RenameModule `json:"renames,omitempty" jsonschema:"module renames to apply to import statements"`
	Add      []engine.AddImport    `json:"add,omitempty" jsonschema:"modules and names to import"`
}

// PlanImportEditsOutput is the result of the plan_import_edits MCP tool.
// The file on disk is not modified.
type PlanImportEditsOutput struct {
	Edits     []textedit.Edit        `json:"edits"`
	Workspace textedit.WorkspaceEdit `json:"workspaceEdit"`
	Rewritten string                 `json:"rewritten"`
	Changed   bool                   `json:"changed"`
}

// ApplyImportEditsInput is the input for the apply_import_edits MCP tool.
type ApplyImportEditsInput struct {
	Path     string                `json:"path" jsonschema:"path to the Python source file, absolute or relative to the project root"`
	Removals []engine.RemoveName   `json:"removals,omitempty" jsonschema:"imported names to remove; omit name to remove a plain module import"`
	Renames  []engine.RenameModule `json:"renames,omitempty" jsonschema:"module renames to apply to import statements"`
	Add      []engine.AddImport    `json:"add,omitempty" jsonschema:"modules and names to import"`
}

// ApplyImportEditsOutput is the result of the apply_import_edits MCP tool.
type ApplyImportEditsOutput struct {
	Changed   bool `json:"changed"`
	EditCount int  `json:"editCount"`
}
