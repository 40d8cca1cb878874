package chordpro

import "strings"

// ExtractTitle reads the title and subtitle tags of a document without
// parsing its body. It returns "title - subtitle", or just the title when
// there is no subtitle. fallback (usually the file name) stands in for the
// title when the document has no non-empty title tag.
func ExtractTitle(document, fallback string) string {
	var title, subtitle string

	for _, m := range reTags.FindAllStringSubmatch(reNewlines.ReplaceAllString(document, "\n"), -1) {
		switch strings.ToLower(strings.TrimSpace(m[1])) {
		case "t", "title":
			title = strings.TrimSpace(m[2])
		case "st", "subtitle":
			subtitle = strings.TrimSpace(m[2])
		}
	}

	if title == "" {
		title = fallback
	}
	if subtitle == "" {
		return title
	}
	return title + " - " + subtitle
}
