package template

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/wamark/internal/template/domain"
)

// ChangeType classifies one run of a revision diff.
type ChangeType int

const (
	ChangeEqual ChangeType = iota
	ChangeDelete
	ChangeInsert
)

// Change is a run of text that was kept, removed or added.
type Change struct {
	Type ChangeType
	Text string
}

// DiffRevisions compares the bodies of two revisions. Footers are compared
// as a trailing line when either revision has one.
func DiffRevisions(from, to domain.Revision) []Change {
	return DiffText(revisionText(from), revisionText(to))
}

// DiffText returns a semantically cleaned character diff of two strings.
func DiffText(from, to string) []Change {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	changes := make([]Change, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			changes = append(changes, Change{Type: ChangeEqual, Text: d.Text})
		case diffmatchpatch.DiffDelete:
			changes = append(changes, Change{Type: ChangeDelete, Text: d.Text})
		case diffmatchpatch.DiffInsert:
			changes = append(changes, Change{Type: ChangeInsert, Text: d.Text})
		}
	}
	return changes
}

// HasChanges reports whether any run is a delete or insert.
func HasChanges(changes []Change) bool {
	for _, c := range changes {
		if c.Type != ChangeEqual {
			return true
		}
	}
	return false
}

// FormatChanges renders changes in word-diff notation: [-removed-]{+added+}.
func FormatChanges(changes []Change) string {
	var sb strings.Builder
	for _, c := range changes {
		switch c.Type {
		case ChangeEqual:
			sb.WriteString(c.Text)
		case ChangeDelete:
			sb.WriteString("[-" + c.Text + "-]")
		case ChangeInsert:
			sb.WriteString("{+" + c.Text + "+}")
		}
	}
	return sb.String()
}

func revisionText(r domain.Revision) string {
	if r.Footer == "" {
		return r.Body
	}
	return r.Body + "\n\n" + r.Footer
}
