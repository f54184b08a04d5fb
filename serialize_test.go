package linelog

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestExportImportRoundTrip(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	log := New()
	mustRecord(t, log, "c\nd\ne\n", 42)
	mustRecord(t, log, "d\ne\nf\n", 52)
	if _, err := log.RecordText("d\ne\nf\ng\n", 62, Extra{"author": "ada"}); err != nil {
		t.Fatal(err.Error())
	}
	buf, err := log.Export()
	if err != nil {
		t.Fatal(err.Error())
	}
	t.Logf("exported %d revisions as %d bytes", log.MaxRev(), len(buf))

	clone := New()
	if err := clone.Import(buf); err != nil {
		t.Fatal(err.Error())
	}
	if clone.MaxRev() != log.MaxRev() {
		t.Fatalf("MaxRev after import = %d, want %d", clone.MaxRev(), log.MaxRev())
	}
	if clone.Content() != log.Content() {
		t.Errorf("content after import = %q", clone.Content())
	}
	for rev := 0; rev <= log.MaxRev(); rev++ {
		if err := log.CheckOut(rev); err != nil {
			t.Fatal(err.Error())
		}
		if err := clone.CheckOut(rev); err != nil {
			t.Fatal(err.Error())
		}
		if clone.Content() != log.Content() {
			t.Errorf("content at rev %d differs: %q vs %q", rev, clone.Content(), log.Content())
		}
		for i := range clone.Lines() {
			if clone.LineTimestamp(i) != log.LineTimestamp(i) {
				t.Errorf("timestamp of line %d at rev %d differs", i, rev)
			}
		}
	}
	if err := clone.CheckOut(3); err != nil {
		t.Fatal(err.Error())
	}
	if author := clone.LineExtra(3)["author"]; author != "ada" {
		t.Errorf("extra of line 3 = %v", clone.LineExtra(3))
	}
}

func TestExportWireFormat(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	log := New()
	mustRecord(t, log, "x\n", 7)
	buf, err := log.Export()
	if err != nil {
		t.Fatal(err.Error())
	}
	zr, err := gzip.NewReader(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("export is not a gzip stream: %v", err)
	}
	payload, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err.Error())
	}
	var wire struct {
		Code []map[string]interface{} `json:"code"`
		Ts   map[string]int64         `json:"tsMap"`
	}
	if err := json.Unmarshal(payload, &wire); err != nil {
		t.Fatalf("export payload is not JSON: %v", err)
	}
	if len(wire.Code) == 0 {
		t.Fatal("no instructions in payload")
	}
	// instruction 0 was redirected into the first chunk: J -> op 0
	if op := wire.Code[0]["op"]; op != float64(0) {
		t.Errorf("opcode of instruction 0 = %v, want 0 (J)", op)
	}
	ops := make(map[float64]bool)
	for _, inst := range wire.Code {
		ops[inst["op"].(float64)] = true
	}
	for _, want := range []float64{0, 2, 3, 4} { // J, JL, LINE, END
		if !ops[want] {
			t.Errorf("opcode %v missing from program %v", want, wire.Code)
		}
	}
	if wire.Ts["1"] != 7 {
		t.Errorf("tsMap = %v, want rev 1 -> 7", wire.Ts)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	log := New()
	if err := log.Import([]byte("not a gzip stream")); err == nil {
		t.Error("expected an error for non-gzip input")
	}
	var bf bytes.Buffer
	zw := gzip.NewWriter(&bf)
	zw.Write([]byte("{ not json"))
	zw.Close()
	if err := log.Import(bf.Bytes()); err == nil {
		t.Error("expected an error for non-JSON payload")
	}
	bf.Reset()
	zw = gzip.NewWriter(&bf)
	zw.Write([]byte(`{"code":[{"op":9}]}`))
	zw.Close()
	if err := log.Import(bf.Bytes()); err == nil {
		t.Error("expected an error for an unknown opcode")
	}
	bf.Reset()
	zw = gzip.NewWriter(&bf)
	zw.Write([]byte(`{"code":[{"op":0,"pc":17}]}`))
	zw.Close()
	if err := log.Import(bf.Bytes()); err == nil {
		t.Error("expected an error for an out-of-range jump target")
	}
}

func TestImportDefaultsMissingMaps(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	var bf bytes.Buffer
	zw := gzip.NewWriter(&bf)
	zw.Write([]byte(`{"code":[{"op":4}]}`))
	zw.Close()
	log := New()
	if err := log.Import(bf.Bytes()); err != nil {
		t.Fatal(err.Error())
	}
	if log.MaxRev() != 0 || log.Content() != "" {
		t.Errorf("expected pristine empty log, got rev %d content %q", log.MaxRev(), log.Content())
	}
	if ts := log.LineTimestamp(0); ts != 0 {
		t.Errorf("timestamp on empty log = %d", ts)
	}
}
