package classdoc

import (
	"regexp"
	"strings"
)

// DocBlock is the parsed content of an XML doc comment.
type DocBlock struct {
	Summary     string
	Remarks     string
	InheritsDoc bool
}

var (
	summaryTag = regexp.MustCompile(`(?s)<summary>\s*(.*?)\s*</summary>`)
	remarksTag = regexp.MustCompile(`(?s)<remarks>\s*(.*?)\s*</remarks>`)

	// Inline references collapse to the name they point at.
	seeCref   = regexp.MustCompile(`<see(?:also)?\s+cref="(?:[A-Z]:)?([^"]*)"\s*/>`)
	seeLang   = regexp.MustCompile(`<see\s+langword="([^"]*)"\s*/>`)
	paramRefs = regexp.MustCompile(`<(?:type)?paramref\s+name="([^"]*)"\s*/>`)
)

// ParseDocComment extracts summary, remarks and the inheritdoc marker from the
// raw text of one or more adjacent comments. Unclosed or missing tags yield
// empty fields rather than errors.
func ParseDocComment(raw string) DocBlock {
	text := stripCommentMarkers(raw)

	var doc DocBlock
	if m := summaryTag.FindStringSubmatch(text); m != nil {
		doc.Summary = cleanDocText(m[1])
	}
	if m := remarksTag.FindStringSubmatch(text); m != nil {
		doc.Remarks = cleanDocText(m[1])
	}
	doc.InheritsDoc = strings.Contains(text, "<inheritdoc")
	return doc
}

// stripCommentMarkers removes ///, //, /* and */ decorations from each line.
func stripCommentMarkers(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		switch {
		case strings.HasPrefix(line, "///"):
			line = line[3:]
		case strings.HasPrefix(line, "//"):
			line = line[2:]
		case strings.HasPrefix(line, "/**"):
			line = line[3:]
		case strings.HasPrefix(line, "/*"):
			line = line[2:]
		case strings.HasPrefix(line, "*") && !strings.HasPrefix(line, "*/"):
			line = line[1:]
		}
		line = strings.TrimSuffix(line, "*/")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

func cleanDocText(s string) string {
	s = seeCref.ReplaceAllString(s, "$1")
	s = seeLang.ReplaceAllString(s, "$1")
	s = paramRefs.ReplaceAllString(s, "$1")

	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
