package tracker

// AddOrUpdateImport queues the edits needed to make fc's file import the
// requested names from mod. It first tries to update one of the caller's
// known import statements; when no statement can be reused it falls back to
// inserting a brand-new statement placed according to group.
func (t *Tracker) AddOrUpdateImport(fc *FileContext, existing []ImportStatement, mod ModuleInfo, group ImportGroup, names []ImportName, rename *RenameOptions) {
	if t.tryUpdateImport(fc, existing, mod, names, rename) {
		return
	}
	t.appendEdit(fc.Imports.NewImportEdit(fc, mod, group, names))
}

// tryUpdateImport attempts to splice the requested names into an existing
// statement importing mod. The boolean outcome models heuristic failure: the
// caller falls back to plain insertion, nothing here is an error.
func (t *Tracker) tryUpdateImport(fc *FileContext, existing []ImportStatement, mod ModuleInfo, names []ImportName, rename *RenameOptions) bool {
	stmt, ok := findImport(existing, mod.Name)
	if !ok || stmt.IsWildcard {
		return false
	}

	edits, ok := fc.Imports.SpliceEdits(fc, stmt, mod, names)
	if !ok {
		return false
	}

	if rename == nil || rename.Statement.Decl == nil ||
		rename.Statement.Decl.ID() != stmt.Decl.ID() {
		// Common case: adding sibling names to an unrelated existing import.
		for _, e := range edits {
			t.appendEdit(e)
		}
		return true
	}

	// The matched statement is the one being rewritten in place. Only a
	// simple rename is supported: the dotted paths must agree on every
	// segment above the last.
	if parentPath(rename.Statement.ModuleName) != parentPath(mod.Name) {
		return false
	}
	if len(names) != 1 || len(edits) != 1 {
		return false
	}

	stale := t.queuedDeletions(fc.FilePath, edits[0].Range)
	if len(stale) == 0 {
		t.appendEdit(edits[0])
		return true
	}

	// A name in this statement is being renamed and removed at once; the
	// generic splice would collide with the queued deletions. Drop those and
	// rewrite only the module-name leaf token, leaving the alias token
	// untouched. When the requested alias is just the new leaf segment no
	// explicit alias text is needed anyway.
	leafSpan, ok := fc.Syntax.ModuleLeafSpan(stmt.Decl)
	if !ok {
		return false
	}
	t.dropEdits(fc.FilePath, stale)
	t.AddEditWithTextRange(fc, leafSpan, mod.Leaf())
	return true
}

// findImport locates a known statement importing module, either directly or
// in its import-from form.
func findImport(existing []ImportStatement, module string) (ImportStatement, bool) {
	for _, stmt := range existing {
		if stmt.ModuleName == module {
			return stmt, true
		}
	}
	return ImportStatement{}, false
}
