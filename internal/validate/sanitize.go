package validate

import (
	"strings"

	"golang.org/x/net/html"
)

// angleEscaper re-escapes decoded text so the result never holds markup.
var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Sanitize removes markup from s and returns the remaining text, trimmed.
// Contents of script and style elements are dropped entirely. Character
// references are decoded, except that "<" and ">" always come out as "&lt;"
// and "&gt;". Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			if skip == 0 {
				angleEscaper.WriteString(&b, string(z.Text()))
			}
		case html.StartTagToken:
			if isRawElement(z) {
				skip++
			}
		case html.EndTagToken:
			if isRawElement(z) && skip > 0 {
				skip--
			}
		}
	}
}

func isRawElement(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}
