package linelog

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLog2Dot(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	log := New()
	mustRecord(t, log, "hello\nworld\n", 1)
	mustRecord(t, log, "hello\nthere\n", 2)
	var bf strings.Builder
	Log2Dot(log, &bf)
	dot := bf.String()
	t.Logf("dot = %s", dot)
	if !strings.HasPrefix(dot, "strict digraph {") {
		t.Errorf("not a digraph: %s", dot)
	}
	for _, want := range []string{"END", "LINE r1", "LINE r2", "JGE", "JL", "hello"} {
		if !strings.Contains(dot, want) {
			t.Errorf("dot output lacks %q", want)
		}
	}
}
