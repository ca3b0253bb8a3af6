package spanfile

import (
	"testing"

	"pgregory.net/rapid"
)

// buildStore returns a store holding runs.
func buildStore(runs []Run) *Store {
	s := NewStore()
	s.Insert(0, TotalLen(runs))
	s.RegionUpdate(0, runs)
	return s
}

func TestStoreInsert(t *testing.T) {
	tests := []struct {
		name     string
		pos, n   int
		want     []Run
		wantSize int
	}{
		{"at start extends first run", 0, 2, []Run{{Len: 5, Attr: attrA}, {Len: 3, Attr: attrC}}, 8},
		{"at boundary extends preceding run", 3, 2, []Run{{Len: 5, Attr: attrA}, {Len: 3, Attr: attrC}}, 8},
		{"mid run", 4, 2, []Run{{Len: 3, Attr: attrA}, {Len: 5, Attr: attrC}}, 8},
		{"at end extends last run", 6, 2, []Run{{Len: 3, Attr: attrA}, {Len: 5, Attr: attrC}}, 8},
		{"zero length", 2, 0, []Run{{Len: 3, Attr: attrA}, {Len: 3, Attr: attrC}}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := buildStore([]Run{{Len: 3, Attr: attrA}, {Len: 3, Attr: attrC}})
			s.Insert(tt.pos, tt.n)
			expectRuns(t, tt.name, s.Runs(), tt.want)
			if s.TotalLen() != tt.wantSize {
				t.Errorf("TotalLen = %d, want %d", s.TotalLen(), tt.wantSize)
			}
		})
	}
}

func TestStoreInsertEmpty(t *testing.T) {
	s := NewStore()
	s.Insert(0, 4)
	expectRuns(t, "empty", s.Runs(), []Run{{Len: 4}})
}

func TestStoreDelete(t *testing.T) {
	tests := []struct {
		name   string
		pos, n int
		want   []Run
	}{
		{"inside run", 1, 1, []Run{{Len: 2, Attr: attrA}, {Len: 3}, {Len: 3, Attr: attrA}}},
		{"whole middle run merges neighbors", 3, 3, []Run{{Len: 6, Attr: attrA}}},
		{"across runs", 2, 3, []Run{{Len: 2, Attr: attrA}, {Len: 1}, {Len: 3, Attr: attrA}}},
		{"clamped at end", 7, 10, []Run{{Len: 3, Attr: attrA}, {Len: 3}, {Len: 1, Attr: attrA}}},
		{"everything", 0, 9, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := buildStore([]Run{{Len: 3, Attr: attrA}, {Len: 3}, {Len: 3, Attr: attrA}})
			s.Delete(tt.pos, tt.n)
			expectRuns(t, tt.name, s.Runs(), tt.want)
			if got, want := s.TotalLen(), TotalLen(tt.want); got != want {
				t.Errorf("TotalLen = %d, want %d", got, want)
			}
		})
	}
}

func TestStoreRegionUpdate(t *testing.T) {
	s := buildStore([]Run{{Len: 10}})
	s.RegionUpdate(2, []Run{{Len: 3, Attr: attrB}, {Len: 0, Attr: attrC}})
	expectRuns(t, "middle", s.Runs(), []Run{{Len: 2}, {Len: 3, Attr: attrB}, {Len: 5}})

	s.RegionUpdate(5, []Run{{Len: 2, Attr: attrB}})
	expectRuns(t, "extend", s.Runs(), []Run{{Len: 2}, {Len: 5, Attr: attrB}, {Len: 3}})

	s.RegionUpdate(8, []Run{{Len: 5, Attr: attrA}})
	expectRuns(t, "past end ignored", s.Runs(), []Run{{Len: 2}, {Len: 5, Attr: attrB}, {Len: 3}})
}

func TestStoreReset(t *testing.T) {
	s := buildStore([]Run{{Len: 4, Attr: attrA}})
	s.Reset([]Run{{Len: 2}, {Len: 0, Attr: attrB}, {Len: 3}})
	expectRuns(t, "reset", s.Runs(), []Run{{Len: 5}})
	if s.TotalLen() != 5 {
		t.Errorf("TotalLen = %d, want 5", s.TotalLen())
	}
}

func TestStoreDiff(t *testing.T) {
	s := buildStore([]Run{{Len: 3, Attr: attrA}, {Len: 4}, {Len: 3, Attr: attrC}})

	if _, _, ok := s.Diff(s.Runs()); ok {
		t.Error("Diff of identical runs reported a change")
	}

	start, region, ok := s.Diff([]Run{{Len: 3, Attr: attrA}, {Len: 1}, {Len: 2, Attr: attrB}, {Len: 1}, {Len: 3, Attr: attrC}})
	if !ok || start != 4 {
		t.Fatalf("Diff = %d, %v, %v; want start 4", start, region, ok)
	}
	expectRuns(t, "changed region", region, []Run{{Len: 2, Attr: attrB}})

	next := []Run{{Len: 11}}
	start, region, ok = s.Diff(next)
	if !ok || start != 0 {
		t.Fatalf("length change: Diff = %d, %v, %v", start, region, ok)
	}
	expectRuns(t, "length change", region, next)
}

// TestProperty_DiffUpdateConverges checks that writing only the region
// Diff reports brings the store to the new runs.
func TestProperty_DiffUpdateConverges(t *testing.T) {
	attrs := []Attr{attrDefault, attrA, attrB, attrC}
	genRuns := func(t *rapid.T, label string, total int) []Run {
		var runs []Run
		for left := total; left > 0; {
			n := rapid.IntRange(1, left).Draw(t, label+"-len")
			runs = append(runs, Run{Len: n, Attr: attrs[rapid.IntRange(0, len(attrs)-1).Draw(t, label+"-attr")]})
			left -= n
		}
		return compact(runs)
	}
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(0, 40).Draw(t, "total")
		s := buildStore(genRuns(t, "old", total))
		if pos := rapid.IntRange(0, total).Draw(t, "pos"); rapid.Bool().Draw(t, "edit") {
			n := rapid.IntRange(0, 5).Draw(t, "n")
			s.Insert(pos, n)
			total += n
		}
		next := genRuns(t, "new", total)

		start, region, ok := s.Diff(next)
		if ok {
			s.RegionUpdate(start, region)
		}
		got := s.Runs()
		if len(got) != len(next) {
			t.Fatalf("after update got %+v, want %+v", got, next)
		}
		for i := range next {
			if got[i].Len != next[i].Len || !got[i].Attr.Equal(next[i].Attr) {
				t.Fatalf("after update got %+v, want %+v", got, next)
			}
		}
	})
}
