package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/tern-works/refit/internal/engine"
)

func runRewrite(eng *engine.Engine, flags cliFlags) error {
	if flags.File == "" {
		return fmt.Errorf("usage: refit -file <path> [-remove module:name] [-rename old=new] [-add module:name]")
	}

	req, err := buildRequest(flags)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if flags.DryRun {
		res, err := eng.RewriteFile(ctx, req)
		if err != nil {
			return err
		}
		fmt.Print(res.Rewritten)
		return nil
	}

	res, err := eng.Apply(ctx, req)
	if err != nil {
		return err
	}
	if !res.Changed() {
		fmt.Printf("%s: no changes\n", req.Path)
		return nil
	}
	fmt.Printf("%s: %d edit(s) applied\n", req.Path, len(res.Edits))
	return nil
}

func buildRequest(flags cliFlags) (engine.FileRequest, error) {
	req := engine.FileRequest{Path: flags.File}

	for _, spec := range flags.Removals {
		module, name, _ := strings.Cut(spec, ":")
		if module == "" {
			return req, fmt.Errorf("invalid -remove %q: want module or module:name", spec)
		}
		req.Removals = append(req.Removals, engine.RemoveName{Module: module, Name: name})
	}

	for _, spec := range flags.Renames {
		from, to, ok := strings.Cut(spec, "=")
		if !ok || from == "" || to == "" {
			return req, fmt.Errorf("invalid -rename %q: want old=new", spec)
		}
		req.Renames = append(req.Renames, engine.RenameModule{From: from, To: to})
	}

	for _, spec := range flags.Add {
		module, namesSpec, _ := strings.Cut(spec, ":")
		if module == "" {
			return req, fmt.Errorf("invalid -add %q: want module or module:name[=alias],...", spec)
		}
		add := engine.AddImport{Module: module}
		if namesSpec != "" {
			for _, part := range strings.Split(namesSpec, ",") {
				name, alias, _ := strings.Cut(strings.TrimSpace(part), "=")
				if name == "" {
					return req, fmt.Errorf("invalid -add %q: empty name", spec)
				}
				add.Names = append(add.Names, engine.Name{Name: name, Alias: alias})
			}
		}
		req.Add = append(req.Add, add)
	}

	return req, nil
}
