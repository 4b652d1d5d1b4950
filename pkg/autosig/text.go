package autosig

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Elements that end a visible line of text.
var lineBreakAtoms = map[atom.Atom]bool{
	atom.Br:    true,
	atom.Div:   true,
	atom.P:     true,
	atom.Tr:    true,
	atom.Td:    true,
	atom.Table: true,
	atom.Body:  true,
}

// Elements whose text is never displayed.
var hiddenAtoms = map[atom.Atom]bool{
	atom.Head:   true,
	atom.Title:  true,
	atom.Style:  true,
	atom.Script: true,
}

// PlainText extracts the visible text of markup, one line per block.
// Whitespace inside a line is collapsed and empty lines are dropped.
func PlainText(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))

	var (
		lines  []string
		line   strings.Builder
		hidden int
	)

	flush := func() {
		text := strings.Join(strings.Fields(line.String()), " ")
		if text != "" {
			lines = append(lines, text)
		}
		line.Reset()
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF, a strings.Reader fails with nothing else
			flush()
			return strings.Join(lines, "\n")
		case html.TextToken:
			if hidden == 0 {
				line.Write(z.Text())
			}
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if hiddenAtoms[a] {
				switch tt {
				case html.StartTagToken:
					hidden++
				case html.EndTagToken:
					if hidden > 0 {
						hidden--
					}
				}
				continue
			}
			if lineBreakAtoms[a] {
				flush()
			}
		}
	}
}
