// Package lineindex maps between absolute character offsets and line
// numbers for a document that is edited incrementally.
//
// The index holds one Line record per line, ordered by line number.
// Line 0 always starts at offset 0 and line starts are strictly
// increasing. Records live in a gap buffer so that the insertions and
// removals produced by typing near one spot stay cheap.
//
// An Index is not safe for concurrent mutation. Its owner must
// serialize writes; concurrent reads are fine between writes.
package lineindex

import (
	"fmt"
	"sort"
)

// NotFound is returned by offset queries for lines that do not exist.
const NotFound = -1

// Line records the absolute offset of the first character of a line.
type Line struct {
	Start int
}

// Index tracks line start offsets.
type Index struct {
	lines  []Line // storage array with gap
	gap0   int    // start of gap (first unused index)
	gap1   int    // end of gap (first used index after gap)
	length func() int
}

const minGapCapacity = 32

// New creates an Index holding a single line at offset 0. length
// reports the current document length and is consulted by
// OffsetOfLineEnd for the last line; nil means an empty document.
func New(length func() int) *Index {
	ix := &Index{length: length}
	ix.Clear()
	return ix
}

// LineCount returns the number of lines. It is always at least 1.
func (ix *Index) LineCount() int {
	return ix.gap0 + (len(ix.lines) - ix.gap1)
}

// Clear resets the index to a single line starting at offset 0.
func (ix *Index) Clear() {
	if len(ix.lines) == 0 {
		ix.lines = make([]Line, minGapCapacity)
	}
	ix.lines[0] = Line{Start: 0}
	ix.gap0 = 1
	ix.gap1 = len(ix.lines)
}

// physicalIndex converts a logical line number to a slot in ix.lines.
func (ix *Index) physicalIndex(logical int) int {
	if logical < ix.gap0 {
		return logical
	}
	return logical + (ix.gap1 - ix.gap0)
}

func (ix *Index) get(logical int) Line {
	return ix.lines[ix.physicalIndex(logical)]
}

func (ix *Index) set(logical int, l Line) {
	ix.lines[ix.physicalIndex(logical)] = l
}

// moveGapTo repositions the gap so that gap0 == logical.
func (ix *Index) moveGapTo(logical int) {
	if logical == ix.gap0 {
		return
	}
	if logical < ix.gap0 {
		count := ix.gap0 - logical
		copy(ix.lines[ix.gap1-count:ix.gap1], ix.lines[logical:ix.gap0])
		ix.gap1 -= count
		ix.gap0 = logical
	} else {
		count := logical - ix.gap0
		copy(ix.lines[ix.gap0:ix.gap0+count], ix.lines[ix.gap1:ix.gap1+count])
		ix.gap0 += count
		ix.gap1 += count
	}
}

// growGap ensures there are at least needed free slots in the gap.
func (ix *Index) growGap(needed int) {
	if ix.gap1-ix.gap0 >= needed {
		return
	}
	oldLen := len(ix.lines)
	growth := max(oldLen, needed, minGapCapacity)
	newLen := oldLen + growth

	grown := make([]Line, newLen)
	copy(grown[:ix.gap0], ix.lines[:ix.gap0])
	afterCount := oldLen - ix.gap1
	newGap1 := newLen - afterCount
	copy(grown[newGap1:], ix.lines[ix.gap1:])

	ix.lines = grown
	ix.gap1 = newGap1
}

// Insert adds a line record at position line starting at offset start.
// Line 0 is fixed at offset 0, so inserting at 0 does nothing, as does
// a position beyond LineCount.
func (ix *Index) Insert(line, start int) {
	if line <= 0 || line > ix.LineCount() {
		return
	}
	ix.moveGapTo(line)
	ix.growGap(1)
	ix.lines[ix.gap0] = Line{Start: start}
	ix.gap0++
}

// Remove deletes the line record at position line, merging it into the
// line above. Removing line 0 or a line that does not exist does nothing.
func (ix *Index) Remove(line int) {
	if line <= 0 || line >= ix.LineCount() {
		return
	}
	ix.moveGapTo(line)
	ix.gap1++
}

// ShiftIndexes adds shiftBy to the start of every line from fromLine
// onward. A line whose shifted start is no longer positive lost its
// newline to a deletion and is removed; the line that slides into its
// position is examined next. fromLine must be in [1, LineCount).
func (ix *Index) ShiftIndexes(fromLine, shiftBy int) {
	if fromLine < 1 || fromLine >= ix.LineCount() {
		return
	}
	i := fromLine
	for i < ix.LineCount() {
		n := ix.get(i).Start + shiftBy
		if n > 0 {
			ix.set(i, Line{Start: n})
			i++
			continue
		}
		ix.Remove(i)
	}
}

// OffsetOfLineStart returns the offset of the first character of line,
// or NotFound if there is no such line.
func (ix *Index) OffsetOfLineStart(line int) int {
	if line < 0 || line >= ix.LineCount() {
		return NotFound
	}
	return ix.get(line).Start
}

// OffsetOfLineEnd returns the offset just past the last character of
// line, excluding its newline. For the last line it is the document
// length.
func (ix *Index) OffsetOfLineEnd(line int) int {
	n := ix.LineCount()
	if line < 0 || line >= n {
		return NotFound
	}
	if line == n-1 {
		if ix.length == nil {
			return 0
		}
		return ix.length()
	}
	return ix.OffsetOfLineStart(line+1) - 1
}

// LineForOffset returns the line containing offset: the greatest line
// whose start is at or before offset. Offsets past the last line start
// belong to the last line; negative offsets to line 0.
func (ix *Index) LineForOffset(offset int) int {
	n := ix.LineCount()
	// First line starting after offset; the one before it contains offset.
	i := sort.Search(n, func(i int) bool {
		return ix.get(i).Start > offset
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// LineAt returns the record for line. Out-of-range lines yield the zero
// Line rather than a panic; callers may ask while an edit is half
// applied.
func (ix *Index) LineAt(line int) Line {
	if line < 0 || line >= ix.LineCount() {
		return Line{}
	}
	return ix.get(line)
}

// Lines returns all line records as a new slice.
func (ix *Index) Lines() []Line {
	n := ix.LineCount()
	out := make([]Line, 0, n)
	out = append(out, ix.lines[:ix.gap0]...)
	out = append(out, ix.lines[ix.gap1:]...)
	return out
}

// Check verifies the index invariants: line 0 at offset 0 and strictly
// increasing starts.
func (ix *Index) Check() error {
	n := ix.LineCount()
	if n < 1 {
		return fmt.Errorf("no lines")
	}
	if s := ix.get(0).Start; s != 0 {
		return fmt.Errorf("line 0 starts at %d", s)
	}
	for i := 1; i < n; i++ {
		prev, cur := ix.get(i-1).Start, ix.get(i).Start
		if cur <= prev {
			return fmt.Errorf("line %d starts at %d, not after line %d at %d", i, cur, i-1, prev)
		}
	}
	return nil
}
