package parser

import "testing"

func TestLineMap(t *testing.T) {
	m := NewLineMap("ab\ncd\r\nef\rg")
	if got := m.Lines(); got != 4 {
		t.Fatalf("Lines() = %d, want 4", got)
	}

	tests := []struct {
		pos, line, column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{7, 3, 1},
		{10, 4, 1},
		{11, 4, 2},
	}
	for _, tt := range tests {
		if got := m.Line(tt.pos); got != tt.line {
			t.Errorf("Line(%d) = %d, want %d", tt.pos, got, tt.line)
		}
		if got := m.Column(tt.pos); got != tt.column {
			t.Errorf("Column(%d) = %d, want %d", tt.pos, got, tt.column)
		}
		if got := m.Offset(tt.line, tt.column); got != tt.pos {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.line, tt.column, got, tt.pos)
		}
	}
}

func TestLineMapLineStart(t *testing.T) {
	m := NewLineMap("a\nb")
	tests := []struct {
		line, want int
	}{
		{0, 0},
		{1, 0},
		{2, 2},
		{9, 2},
	}
	for _, tt := range tests {
		if got := m.LineStart(tt.line); got != tt.want {
			t.Errorf("LineStart(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}
}
