package render

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/goask/internal/search"
)

// DefaultReferences is how many sources are listed under an answer.
const DefaultReferences = 3

// Document is the text shown in the output area. It is not safe for
// concurrent use; the UI loop owns it.
type Document struct {
	// References caps the listed sources; zero means DefaultReferences.
	References int

	sb strings.Builder
}

func (d *Document) Clear() { d.sb.Reset() }

func (d *Document) Write(s string) { d.sb.WriteString(s) }

func (d *Document) String() string { return d.sb.String() }

// Render replaces the document with the question, the answer and the
// leading references in provider order.
func (d *Document) Render(question string, results search.ResultSet, answer string) {
	d.Clear()
	fmt.Fprintf(&d.sb, "Question: %s\n\n", question)
	d.sb.WriteString("AI Answer:\n")
	fmt.Fprintf(&d.sb, "%s\n\n", answer)
	d.sb.WriteString("Web References:\n")
	n := d.References
	if n <= 0 {
		n = DefaultReferences
	}
	for i, r := range results.Top(n) {
		fmt.Fprintf(&d.sb, "%d. %s\n", i+1, r.Title)
		fmt.Fprintf(&d.sb, "   URL: %s\n\n", r.URL)
	}
}

// RenderError appends an error line and keeps whatever is already shown.
func (d *Document) RenderError(err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	fmt.Fprintf(&d.sb, "\nError: %s", msg)
}
