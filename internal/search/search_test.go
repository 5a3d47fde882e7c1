package search

import (
	"reflect"
	"testing"

	"yim/internal/buffer"
)

func TestCycleForwardAndBackward(t *testing.T) {
	b := buffer.FromBytes([]byte("foo bar foo"))
	var r Registry
	if got := len(r.Search(b, "foo")); got != 2 {
		t.Fatalf("expected 2 matches, got %d", got)
	}
	var seq []int
	seq = append(seq, r.Current())
	for i := 0; i < 4; i++ {
		r.Cycle(1)
		seq = append(seq, r.Current())
	}
	if !reflect.DeepEqual(seq, []int{0, 1, 0, 1, 0}) {
		t.Fatalf("forward cycle sequence %v", seq)
	}

	r.Search(b, "foo")
	seq = seq[:0]
	for i := 0; i < 4; i++ {
		r.Cycle(-1)
		seq = append(seq, r.Current())
	}
	if !reflect.DeepEqual(seq, []int{1, 0, 1, 0}) {
		t.Fatalf("backward cycle sequence %v", seq)
	}
}

func TestCycleWithoutMatchesIsNoop(t *testing.T) {
	var r Registry
	if _, ok := r.Cycle(1); ok {
		t.Fatalf("cycle on empty registry must report false")
	}
	if _, ok := r.Cycle(-1); ok {
		t.Fatalf("cycle on empty registry must report false")
	}
	if r.Focused() {
		t.Fatalf("empty registry cannot be focused")
	}
}

func TestEmptyQueryYieldsNoRanges(t *testing.T) {
	b := buffer.FromBytes([]byte("abc"))
	var r Registry
	if got := r.Search(b, ""); len(got) != 0 {
		t.Fatalf("expected no ranges, got %v", got)
	}
}

func TestPosition(t *testing.T) {
	b := buffer.FromBytes([]byte("one\ntwo x\nthree x"))
	var r Registry
	r.Search(b, "x")
	rows := [][2]int{}
	for _, rg := range r.Ranges() {
		row, col := Position(b, rg)
		rows = append(rows, [2]int{row, col})
	}
	want := [][2]int{{1, 4}, {2, 6}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("positions %v, want %v", rows, want)
	}
}

func TestSelectFrom(t *testing.T) {
	b := buffer.FromBytes([]byte("ab ab ab"))
	var r Registry
	r.Search(b, "ab")
	if rg, _ := r.SelectFrom(4); rg.Start != 6 || r.Current() != 2 {
		t.Fatalf("expected match at 6, got %v (current %d)", rg, r.Current())
	}
	if rg, _ := r.SelectFrom(7); rg.Start != 0 {
		t.Fatalf("expected wrap to first match, got %v", rg)
	}
	if !r.Focused() {
		t.Fatalf("SelectFrom must focus the match")
	}
}

func TestWithinMergesOverlapsAndClips(t *testing.T) {
	b := buffer.FromBytes([]byte("aaaa\nxaa"))
	var r Registry
	r.Search(b, "aa")
	got := r.Within(0, 4)
	if !reflect.DeepEqual(got, []buffer.Range{{Start: 0, End: 4}}) {
		t.Fatalf("row 0 segments %v", got)
	}
	got = r.Within(5, 8)
	if !reflect.DeepEqual(got, []buffer.Range{{Start: 6, End: 8}}) {
		t.Fatalf("row 1 segments %v", got)
	}
	got = r.Within(1, 2)
	if !reflect.DeepEqual(got, []buffer.Range{{Start: 1, End: 2}}) {
		t.Fatalf("clipped segments %v", got)
	}
}

func TestRefreshKeepsQuery(t *testing.T) {
	b := buffer.FromBytes([]byte("ab ab"))
	var r Registry
	r.Search(b, "ab")
	r.Cycle(1)
	b.Reset([]byte("ab"))
	r.Refresh(b)
	if r.Len() != 1 || r.Current() != 0 {
		t.Fatalf("expected 1 match with current reset, got %d/%d", r.Len(), r.Current())
	}
	if r.Focused() {
		t.Fatalf("refresh must drop focus")
	}
}
