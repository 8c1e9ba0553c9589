package template

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position is a location inside a template source
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

func (p Position) details() map[string]interface{} {
	return map[string]interface{}{
		"file": p.File,
		"line": p.Line,
		"col":  p.Col,
	}
}

// lineIndex maps byte offsets of a source to line/column positions
type lineIndex struct {
	name   string
	src    string
	starts []int
}

func newLineIndex(name, src string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{name: name, src: src, starts: starts}
}

func (l *lineIndex) position(offset int) Position {
	if offset > len(l.src) {
		offset = len(l.src)
	}
	line := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
	col := utf8.RuneCountInString(l.src[l.starts[line]:offset]) + 1
	return Position{File: l.name, Line: line + 1, Col: col}
}
