package main

import (
	"testing"

	"github.com/nalgeon/be"
)

const fence = "```"

func TestEditsFillsOutcomesAndEmptyTrees(t *testing.T) {
	doc := "## Test: stale\n" +
		fence + "sjava-program\nint a = b;\n" + fence + "\n" +
		fence + "outcome\n(ok)\n" + fence + "\n" +
		"\n## Test: placeholder\n" +
		fence + "sjava-program\nint a;\n" + fence + "\n" +
		fence + "ast\n" + fence + "\n" +
		fence + "outcome\n" + fence + "\n" +
		"\n## Test: fresh\n" +
		fence + "sjava-program\nint a;\n" + fence + "\n" +
		fence + "ast\n(program ...)\n" + fence + "\n" +
		fence + "outcome\n(ok)\n" + fence + "\n"

	u := NewUpdater()
	edits, err := u.edits(doc)
	be.Err(t, err, nil)
	be.Equal(t, len(edits), 3)

	want := "## Test: stale\n" +
		fence + "sjava-program\nint a = b;\n" + fence + "\n" +
		fence + "outcome\n(semantic symbol-not-found 1 \"b\")\n" + fence + "\n" +
		"\n## Test: placeholder\n" +
		fence + "sjava-program\nint a;\n" + fence + "\n" +
		fence + "ast\n(program (declare (entry \"int\" \"a\")))\n" + fence + "\n" +
		fence + "outcome\n(ok)\n" + fence + "\n" +
		"\n## Test: fresh\n" +
		fence + "sjava-program\nint a;\n" + fence + "\n" +
		fence + "ast\n(program ...)\n" + fence + "\n" +
		fence + "outcome\n(ok)\n" + fence + "\n"
	got := apply(doc, edits)
	be.Equal(t, got, want)

	// A second run has nothing left to do.
	edits, err = u.edits(got)
	be.Err(t, err, nil)
	be.Equal(t, len(edits), 0)
}

func TestEditsReportsBadDocuments(t *testing.T) {
	_, err := NewUpdater().edits(fence + "outcome\n(ok)\n" + fence + "\n")
	be.Err(t, err, "outside of test case")
}
