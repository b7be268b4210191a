package textedit

// Edit is one textual change to a file: replace the text covered by Range
// with ReplacementText. An empty ReplacementText is a pure deletion, and a
// zero-length Range is a pure insertion.
type Edit struct {
	FilePath        string `json:"filePath"`
	Range           Range  `json:"range"`
	ReplacementText string `json:"replacementText"`
}

// IsDeletion reports whether the edit removes text without adding any.
func (e Edit) IsDeletion() bool {
	return e.ReplacementText == ""
}

// Equal reports whether two edits target the same file and range with the
// same replacement text.
func (e Edit) Equal(o Edit) bool {
	return e.FilePath == o.FilePath && e.Range == o.Range && e.ReplacementText == o.ReplacementText
}

// TextChange is the file-independent shape of an edit, used at the boundary
// with workspace-edit consumers.
type TextChange struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// WorkspaceEdit groups changes per file path.
type WorkspaceEdit map[string][]TextChange

// ToWorkspaceEdit regroups a flat edit list by file, preserving list order
// within each file.
func ToWorkspaceEdit(edits []Edit) WorkspaceEdit {
	out := make(WorkspaceEdit)
	for _, e := range edits {
		out[e.FilePath] = append(out[e.FilePath], TextChange{Range: e.Range, NewText: e.ReplacementText})
	}
	return out
}

// Changes strips file paths from a flat edit list.
func Changes(edits []Edit) []TextChange {
	out := make([]TextChange, 0, len(edits))
	for _, e := range edits {
		out = append(out, TextChange{Range: e.Range, NewText: e.ReplacementText})
	}
	return out
}
