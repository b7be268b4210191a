package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewServer creates an MCP server with the 3 import-rewrite tools registered:
// list_imports, plan_import_edits, and apply_import_edits.
func NewServer(svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "refit",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_imports",
		Description: "Parse a Python file and list every import statement it declares, with modules, imported names, aliases, and line numbers.",
	}, svc.ListImports)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "plan_import_edits",
		Description: "Compute the text edits for a set of import removals, renames, and additions against a Python file. Returns the edits and the rewritten text without modifying the file.",
	}, svc.PlanImportEdits)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "apply_import_edits",
		Description: "Compute and write back the import rewrite for a Python file. Removals, renames, and additions are resolved together so related edits merge cleanly.",
	}, svc.ApplyImportEdits)

	return server
}

// RunMCPServer starts an HTTP server exposing the import-rewrite MCP tools.
func RunMCPServer(ctx context.Context, svc *Service, addr string) error {
	server := NewServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, svc *Service) error {
	return NewServer(svc).Run(ctx, &mcp.StdioTransport{})
}
