package rewriter

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Differ renders line-level before/after listings for dry runs.
type Differ struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

func NewDiffer() *Differ {
	return &Differ{dmp: diffmatchpatch.New()}
}

// LineDiff lists removed lines prefixed with "-" and added lines with "+".
// Unchanged lines are omitted.
func (d *Differ) LineDiff(path, before, after string) string {
	if before == after {
		return ""
	}

	a, b, lines := d.dmp.DiffLinesToChars(before, after)
	diffs := d.dmp.DiffCharsToLines(d.dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	sb.WriteString("--- " + path + "\n")
	sb.WriteString("+++ " + path + "\n")

	for _, diff := range diffs {
		var prefix string
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(diff.Text, "\n"), "\n") {
			sb.WriteString(prefix + line + "\n")
		}
	}

	return sb.String()
}
