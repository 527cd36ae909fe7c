package parser

import "sort"

// LineMap converts byte offsets to 1-based line and column numbers. Lines
// end at '\n', '\r' or "\r\n".
type LineMap struct {
	starts []int
}

func NewLineMap(src string) *LineMap {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case '\n':
			starts = append(starts, i+1)
		}
	}
	return &LineMap{starts: starts}
}

// Line returns the line containing pos.
func (m *LineMap) Line(pos int) int {
	return sort.Search(len(m.starts), func(i int) bool { return m.starts[i] > pos })
}

// Column returns the 1-based byte column of pos within its line.
func (m *LineMap) Column(pos int) int {
	return pos - m.LineStart(m.Line(pos)) + 1
}

// LineStart returns the offset of the first byte of line.
func (m *LineMap) LineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(m.starts) {
		return m.starts[len(m.starts)-1]
	}
	return m.starts[line-1]
}

// Offset returns the byte offset of line and column.
func (m *LineMap) Offset(line, column int) int {
	return m.LineStart(line) + column - 1
}

// Lines returns the number of lines.
func (m *LineMap) Lines() int {
	return len(m.starts)
}
