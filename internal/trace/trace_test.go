package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(strings.ToUpper(name))
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if lvl.String() != name {
			t.Fatalf("ParseLevel(%q) = %v", name, lvl)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelScopes(t *testing.T) {
	if !LevelPhase.ShouldEmit(ScopePass) || LevelPhase.ShouldEmit(ScopeUnit) {
		t.Fatal("phase level should stop at pass scope")
	}
	if !LevelDetail.ShouldEmit(ScopeUnit) || LevelDetail.ShouldEmit(ScopeRecord) {
		t.Fatal("detail level should stop at unit scope")
	}
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Fatal("off level should emit nothing")
	}
}

func TestRingSnapshotWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeRecord, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	got := snap[0].Name + snap[1].Name + snap[2].Name
	if got != "cde" {
		t.Fatalf("snapshot order = %q, want cde", got)
	}
	if snap[0].Seq >= snap[1].Seq || snap[1].Seq >= snap[2].Seq {
		t.Fatal("sequence numbers must increase")
	}
}

func TestSpanNesting(t *testing.T) {
	r := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), r)

	ctx, build := Start(ctx, ScopeDriver, "build")
	_, pass := Start(ctx, ScopePass, "compile")
	pass.WithExtra("units", "3").End("ok")
	build.End("")

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("got %d events, want 4", len(snap))
	}
	if snap[1].ParentID != build.ID() {
		t.Fatalf("pass parent = %d, want %d", snap[1].ParentID, build.ID())
	}
	if snap[2].Kind != KindSpanEnd || snap[2].Extra["units"] != "3" || snap[2].Detail != "ok" {
		t.Fatalf("unexpected end event: %+v", snap[2])
	}
	if snap[0].GID == 0 {
		t.Fatal("goroutine id not recorded")
	}
}

func TestSpanFilteredByLevel(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	ctx := WithTracer(context.Background(), r)

	_, unit := Start(ctx, ScopeUnit, "tab:Draw.pde")
	if unit.ID() != 0 {
		t.Fatal("unit span should be disabled at phase level")
	}
	unit.End("")
	Point(ctx, ScopeRecord, "record", "Draw.java:3")
	if n := len(r.Snapshot()); n != 0 {
		t.Fatalf("got %d events, want 0", n)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	st.Emit(&Event{Kind: KindPoint, Scope: ScopeUnit, Name: "scan", Detail: "Draw.pde"})

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if decoded["name"] != "scan" || decoded["scope"] != "unit" || decoded["kind"] != "point" {
		t.Fatalf("unexpected event: %v", decoded)
	}
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatAuto)
	st.Emit(&Event{Kind: KindSpanEnd, Scope: ScopePass, ParentID: 1, Name: "copy", Extra: map[string]string{"b": "2", "a": "1"}})

	line := buf.String()
	if !strings.Contains(line, "← copy {a=1, b=2}") {
		t.Fatalf("unexpected text line %q", line)
	}
}

func TestDetectFormat(t *testing.T) {
	if DetectFormat(FormatAuto, "build.ndjson") != FormatNDJSON {
		t.Fatal("ndjson suffix")
	}
	if DetectFormat(FormatAuto, "-") != FormatText {
		t.Fatal("stderr defaults to text")
	}
	if DetectFormat(FormatText, "x.jsonl") != FormatText {
		t.Fatal("explicit format wins")
	}
}

func TestMultiRing(t *testing.T) {
	var buf bytes.Buffer
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), NewRingTracer(4, LevelPhase))
	m.Emit(&Event{Kind: KindPoint, Scope: ScopeDriver, Name: "x"})
	if m.Ring() == nil || len(m.Ring().Snapshot()) != 1 {
		t.Fatal("ring child did not receive the event")
	}
	if buf.Len() == 0 {
		t.Fatal("stream child did not receive the event")
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
}

func TestHeartbeatNilSafe(t *testing.T) {
	var h *Heartbeat
	h.Stop()
	if StartHeartbeat(Nop, 0) != nil {
		t.Fatal("expected nil heartbeat for nop tracer")
	}
}
