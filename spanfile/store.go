package spanfile

import "slices"

// Store mirrors the runs a window holds for its body. Edits move the
// runs the same way the window does, so that after a recolor Diff can
// find the smallest region that must be rewritten.
//
// Runs in a Store are always compact: no empty runs and no neighbors
// with equal styling.
type Store struct {
	runs  []Run
	total int
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// TotalLen returns the number of characters covered.
func (s *Store) TotalLen() int { return s.total }

// Runs returns a copy of the runs.
func (s *Store) Runs() []Run { return slices.Clone(s.runs) }

// Clear forgets all runs, as when the window's spans are reset.
func (s *Store) Clear() {
	s.runs = s.runs[:0]
	s.total = 0
}

// runAt returns the index of the run holding character pos.
func (s *Store) runAt(pos int) int {
	off := 0
	for i, r := range s.runs {
		if pos < off+r.Len {
			return i
		}
		off += r.Len
	}
	return len(s.runs)
}

// Reset makes runs the whole content of the store, as after a write
// that covered the entire body.
func (s *Store) Reset(runs []Run) {
	s.runs = compact(slices.Clone(runs))
	s.total = TotalLen(s.runs)
}

// Insert accounts for n characters inserted at pos. The new text takes
// the style of the character before it, or of the first run at pos 0.
func (s *Store) Insert(pos, n int) {
	if n <= 0 {
		return
	}
	s.total += n
	if len(s.runs) == 0 {
		s.runs = append(s.runs, Run{Len: n})
		return
	}
	i := 0
	if pos > 0 {
		i = min(s.runAt(pos-1), len(s.runs)-1)
	}
	s.runs[i].Len += n
}

// Delete accounts for the removal of n characters at pos.
func (s *Store) Delete(pos, n int) {
	n = min(n, s.total-pos)
	if pos < 0 || n <= 0 {
		return
	}
	s.runs = compact(slices.Concat(cut(s.runs, 0, pos), cut(s.runs, pos+n, s.total)))
	s.total -= n
}

// RegionUpdate replaces the styling of the characters from offset
// onward with runs, as a write of span definitions does.
func (s *Store) RegionUpdate(offset int, runs []Run) {
	end := offset + TotalLen(runs)
	if offset < 0 || end > s.total {
		return
	}
	s.runs = compact(slices.Concat(cut(s.runs, 0, offset), slices.Clone(runs), cut(s.runs, end, s.total)))
}

// Diff compares the stored runs with next, which must be compact, and
// returns the offset and runs of the region that differs. ok is false
// when nothing changed. When the lengths disagree all of next is
// returned.
func (s *Store) Diff(next []Run) (start int, region []Run, ok bool) {
	n := TotalLen(next)
	if n != s.total {
		return 0, next, n > 0
	}
	pre := commonPrefix(s.runs, next)
	if pre >= n {
		return 0, nil, false
	}
	suf := min(commonPrefix(reversed(s.runs), reversed(next)), n-pre)
	return pre, cut(next, pre, n-suf), true
}

// cut returns the runs covering characters [from, to).
func cut(runs []Run, from, to int) []Run {
	var out []Run
	off := 0
	for _, r := range runs {
		s, e := max(off, from), min(off+r.Len, to)
		if s < e {
			out = append(out, Run{Len: e - s, Attr: r.Attr})
		}
		off += r.Len
		if off >= to {
			break
		}
	}
	return out
}

// commonPrefix returns how many leading characters a and b style the
// same way. Both must be compact.
func commonPrefix(a, b []Run) int {
	pos := 0
	for i := 0; i < len(a) && i < len(b); i++ {
		if !a[i].Attr.Equal(b[i].Attr) {
			return pos
		}
		if a[i].Len != b[i].Len {
			return pos + min(a[i].Len, b[i].Len)
		}
		pos += a[i].Len
	}
	return pos
}

func reversed(runs []Run) []Run {
	out := slices.Clone(runs)
	slices.Reverse(out)
	return out
}
