package linelog

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// A small history with inserts, deletes, replacements, blank lines, a missing
// trailing newline and a revision that empties the file.
var history = []string{
	"package main\n",
	"package main\n\nfunc main() {}\n",
	"package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n",
	"package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n",
	"package main\n\nfunc main() {\n}\n",
	"",
	"// fresh start\npackage main",
	"// fresh start\n// second line\npackage main\n",
}

func TestHistoryRoundTrip(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	log := New()
	revs := make([]int, 0, len(history))
	for i, text := range history {
		rev, err := log.RecordText(text, int64(1000*(i+1)), nil)
		if err != nil {
			t.Fatal(err.Error())
		}
		revs = append(revs, rev)
	}
	for i, text := range history {
		if err := log.CheckOut(revs[i]); err != nil {
			t.Fatal(err.Error())
		}
		if log.Content() != text {
			t.Errorf("checkout of rev %d = %q, want %q", revs[i], log.Content(), text)
		}
	}
	if err := log.CheckOut(0); err != nil {
		t.Fatal(err.Error())
	}
	if log.Content() != "" {
		t.Errorf("rev 0 must be empty, got %q", log.Content())
	}
}

func TestHistorySurvivesSerialization(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	log := New()
	for i, text := range history {
		if _, err := log.RecordText(text, int64(1000*(i+1)), nil); err != nil {
			t.Fatal(err.Error())
		}
	}
	buf, err := log.Export()
	if err != nil {
		t.Fatal(err.Error())
	}
	clone := New()
	if err := clone.Import(buf); err != nil {
		t.Fatal(err.Error())
	}
	for rev := 1; rev <= len(history); rev++ {
		if err := clone.CheckOut(rev); err != nil {
			t.Fatal(err.Error())
		}
		if clone.Content() != history[rev-1] {
			t.Errorf("imported checkout of rev %d = %q", rev, clone.Content())
		}
	}
}

func TestLineOwnership(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	log := New()
	mustRecord(t, log, "one\ntwo\nthree\n", 0)
	mustRecord(t, log, "one\t\ntwo\nthree\nfour\n", 0)
	view := log.Lines()
	wantRevs := []int{2, 1, 1, 2, 0}
	if len(view) != len(wantRevs) {
		t.Fatalf("expected %d view entries, got %d", len(wantRevs), len(view))
	}
	for i, rev := range wantRevs {
		if view[i].Rev != rev {
			t.Errorf("line %d (%q) owned by rev %d, want %d", i, view[i].Data, view[i].Rev, rev)
		}
	}
}

func TestEditChunkRejectsBadBlocks(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	log := New()
	mustRecord(t, log, "a\n", 1)
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a block beyond the view")
		}
	}()
	log.editChunk(2, 9, nil, 2)
}
