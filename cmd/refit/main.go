package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tern-works/refit/internal/config"
	"github.com/tern-works/refit/internal/engine"
	"github.com/tern-works/refit/internal/logging"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ProjectRoot string
	LogLevel    string
	File        string
	DryRun      bool
	ServeMCP    bool
	Addr        string
	Version     bool
	Removals    multiFlag
	Renames     multiFlag
	Add         multiFlag
}

// multiFlag collects repeated occurrences of one string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("refit", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "path to the target project")
	fs.StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn, error (overrides refit.yml)")
	fs.StringVar(&flags.File, "file", "", "Python file to rewrite")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "print the rewritten file instead of writing it")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server for editor integration")
	fs.StringVar(&flags.Addr, "addr", "localhost:8822", "listen address for the MCP server")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")
	fs.Var(&flags.Removals, "remove", "imported name to remove, as module or module:name (repeatable)")
	fs.Var(&flags.Renames, "rename", "module rename, as old=new (repeatable)")
	fs.Var(&flags.Add, "add", "import to add, as module or module:name[=alias],... (repeatable)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level := cfg.LogLevel
	if flags.LogLevel != "" {
		level = flags.LogLevel
	}
	logger := logging.New(level)
	eng := engine.New(cfg, logger)

	if flags.ServeMCP {
		return runServe(eng, logger, flags)
	}
	return runRewrite(eng, flags)
}
