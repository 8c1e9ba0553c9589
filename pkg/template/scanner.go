package template

import (
	"strings"
)

type segmentKind int

const (
	segText segmentKind = iota
	segEscaped
	segRaw
	segStatement
	segComment
)

const (
	tagOpen  = "<%"
	tagClose = "%>"
)

// segment is a piece of template source: literal text or the inside of a tag
type segment struct {
	kind    segmentKind
	content string
	// offset of content within the source, used for positions
	offset int
	// offset of the opening "<%" for tag segments
	tagOffset int
}

// scan splits src into text and tag segments. Literal "<%%" sequences are
// folded into text and a closing "-%>" consumes the newline that follows.
func scan(idx *lineIndex) ([]segment, error) {
	src := idx.src
	var segments []segment
	var text strings.Builder
	textStart := 0

	flushText := func() {
		if text.Len() > 0 {
			segments = append(segments, segment{kind: segText, content: text.String(), offset: textStart})
			text.Reset()
		}
	}

	i := 0
	for i < len(src) {
		open := strings.Index(src[i:], tagOpen)
		if open < 0 {
			if text.Len() == 0 {
				textStart = i
			}
			text.WriteString(src[i:])
			break
		}
		open += i
		if text.Len() == 0 {
			textStart = i
		}
		text.WriteString(src[i:open])

		// <%% is a literal <%
		if strings.HasPrefix(src[open:], "<%%") {
			text.WriteString(tagOpen)
			i = open + 3
			continue
		}

		kind := segStatement
		contentStart := open + len(tagOpen)
		if contentStart < len(src) {
			switch src[contentStart] {
			case '=':
				kind = segEscaped
				contentStart++
			case '-':
				kind = segRaw
				contentStart++
			case '#':
				kind = segComment
				contentStart++
			case '_':
				return nil, syntaxErr(idx.position(open), "unsupported tag %q", "<%_")
			}
		}

		closeAt := strings.Index(src[contentStart:], tagClose)
		if closeAt < 0 {
			return nil, syntaxErr(idx.position(open), "unterminated tag, missing %q", tagClose)
		}
		closeAt += contentStart
		next := closeAt + len(tagClose)

		content := src[contentStart:closeAt]
		trimNewline := false
		if strings.HasSuffix(content, "-") {
			content = content[:len(content)-1]
			trimNewline = true
		}

		flushText()
		segments = append(segments, segment{
			kind:      kind,
			content:   content,
			offset:    contentStart,
			tagOffset: open,
		})

		if trimNewline {
			if strings.HasPrefix(src[next:], "\r\n") {
				next += 2
			} else if strings.HasPrefix(src[next:], "\n") {
				next++
			}
		}
		i = next
	}
	flushText()

	return segments, nil
}
