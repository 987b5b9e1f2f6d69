package metrics

import (
	"strings"
)

// LineCounts holds raw line statistics for a source file.
type LineCounts struct {
	Total   int
	Blank   int
	Comment int
	Code    int
}

// CountLines counts total, blank, comment and code lines in content.
func CountLines(content []byte, lang Language) LineCounts {
	lines := strings.Split(string(content), "\n")
	// Trim trailing empty line from final newline.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var lc LineCounts
	lc.Total = len(lines)
	inBlock := false // tracks multi-line comment state

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			lc.Blank++
			continue
		}

		if inBlock {
			lc.Comment++
			if blockCommentEnd(lang, trimmed, true) {
				inBlock = false
			}
			continue
		}

		if isBlockCommentStart(lang, trimmed) {
			lc.Comment++
			if !blockCommentEnd(lang, trimmed, false) {
				inBlock = true
			}
			continue
		}

		if isLineComment(lang, trimmed) {
			lc.Comment++
		}
	}

	lc.Code = lc.Total - lc.Blank - lc.Comment
	if lc.Code < 0 {
		lc.Code = 0
	}
	return lc
}

// PhysicalLines is the number of lines in content as a line splitter sees
// them. "\n", "\r\n" and a lone "\r" each end a line; a trailing line break
// does not start a new line.
func PhysicalLines(content []byte) int {
	n := 0
	endsWithBreak := false
	for i := 0; i < len(content); i++ {
		endsWithBreak = false
		switch content[i] {
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			fallthrough
		case '\n':
			n++
			endsWithBreak = true
		}
	}
	if len(content) > 0 && !endsWithBreak {
		n++
	}
	return n
}

func isLineComment(lang Language, trimmed string) bool {
	switch lang {
	case LangPython:
		return strings.HasPrefix(trimmed, "#")
	case LangJavaScript:
		return strings.HasPrefix(trimmed, "//")
	default:
		return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#")
	}
}

func isBlockCommentStart(lang Language, trimmed string) bool {
	switch lang {
	case LangPython:
		return strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "'''")
	default:
		return strings.HasPrefix(trimmed, "/*")
	}
}

// blockCommentEnd checks if a trimmed line closes a multi-line comment.
// When insideBlock is false, it reports whether the opening line also closes.
func blockCommentEnd(lang Language, trimmed string, insideBlock bool) bool {
	switch lang {
	case LangPython:
		closes := strings.HasSuffix(trimmed, `"""`) || strings.HasSuffix(trimmed, "'''")
		if insideBlock {
			return closes
		}
		return closes && len(trimmed) > 3
	default:
		if insideBlock {
			return strings.Contains(trimmed, "*/")
		}
		return strings.HasSuffix(trimmed, "*/")
	}
}
