package cpp

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

// Dump formats l per spec §6: a newline whenever an adjacent token's
// line differs from its predecessor's, a single space otherwise. No
// trailing newline is added.
func (l *List) Dump(w io.Writer) error {
	first := true
	for t := l.Front(); t != nil; t = t.Next() {
		if !first {
			if t.Prev() != nil && t.Prev().Loc.Line != t.Loc.Line {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			} else {
				if _, err := io.WriteString(w, " "); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(w, t.Text); err != nil {
			return err
		}
		first = false
	}
	return nil
}

// DebugDump is a development-time aid, not part of the spec'd
// interface: a full structural dump of every token (text, location,
// attribution) for failing-test diagnosis, the same role spew.Sdump
// plays when pocket-lang's debug helpers print a token stream.
func DebugDump(w io.Writer, l *List) {
	type tokenDump struct {
		Text  string
		Loc   Location
		Macro string
	}
	dumps := make([]tokenDump, 0, l.Len())
	for t := l.Front(); t != nil; t = t.Next() {
		dumps = append(dumps, tokenDump{Text: t.Text, Loc: t.Loc, Macro: t.Macro})
	}
	spew.Fdump(w, dumps)
}
