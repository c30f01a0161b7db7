package cpp

// Macro is a parsed #define record (spec §3). Params == nil
// distinguishes an object-like macro from a function-like macro
// declared with zero parameters (Params == []string{}) — the
// empty-and-absent distinction spec §3 calls out explicitly.
type Macro struct {
	Name   string
	Params []string
	Body   *List
}

// IsObjectLike reports whether m has no parameter list at all.
func (m *Macro) IsObjectLike() bool { return m.Params == nil }

// Table is the macro table: name to most-recent definition, last one
// wins, no #undef (spec §3).
type Table struct {
	macros map[string]*Macro
}

// NewTable returns an empty macro table.
func NewTable() *Table {
	return &Table{macros: make(map[string]*Macro)}
}

// Define installs m, replacing any prior definition of the same name.
func (t *Table) Define(m *Macro) {
	t.macros[m.Name] = m
}

// Lookup returns the macro named name, if any.
func (t *Table) Lookup(name string) (*Macro, bool) {
	m, ok := t.macros[name]
	return m, ok
}

// Defined reports whether name is currently in the table — the
// question `defined X` asks, independent of the macro's value.
func (t *Table) Defined(name string) bool {
	_, ok := t.macros[name]
	return ok
}

// DefinePredefined installs name as an object-like macro whose body is
// value, lexed as source text. An empty value is treated as "1"
// (spec §6: "an empty replacement is treated as 1"). This is exactly
// what installing `#define name value` from source would do.
func (t *Table) DefinePredefined(name, value string) {
	if value == "" {
		value = "1"
	}
	body, _ := Lex("<predefine>", value)
	t.Define(&Macro{Name: name, Params: nil, Body: body})
}

// parseDefine parses a #define directive's tokens starting at the
// macro name (i.e. the token right after the "define" keyword) and
// returns the resulting macro plus the first token of the following
// source line. ok is false for a malformed directive (spec §4.3); the
// returned rest still points past the directive's line so the caller
// can keep scanning.
func parseDefine(tok *Token) (m *Macro, rest *Token, ok bool) {
	if tok == nil || !tok.IsName() {
		return nil, skipToEOL(tok), false
	}
	name := tok.Text
	line := tok.Loc.Line
	next := tok.Next()

	if next != nil && next.Loc.Line == line && next.Text == "(" &&
		next.Loc.Column == tok.Loc.Column+len(tok.Text) {
		return parseFuncLikeDefine(name, line, next, tok)
	}

	body := collectSameLine(next, line)
	return &Macro{Name: name, Params: nil, Body: body}, skipToEOL(tok), true
}

func parseFuncLikeDefine(name string, line int, lparen, nameTok *Token) (*Macro, *Token, bool) {
	cur := lparen.Next()
	var params []string
	if cur != nil && cur.Loc.Line == line && cur.Text == ")" {
		params = []string{}
		cur = cur.Next()
	} else {
		params = []string{}
		for {
			if cur == nil || cur.Loc.Line != line || !cur.IsName() {
				return nil, skipToEOL(nameTok), false
			}
			params = append(params, cur.Text)
			cur = cur.Next()
			if cur != nil && cur.Loc.Line == line && cur.Text == "," {
				cur = cur.Next()
				continue
			}
			if cur != nil && cur.Loc.Line == line && cur.Text == ")" {
				cur = cur.Next()
				break
			}
			return nil, skipToEOL(nameTok), false
		}
	}
	body := collectSameLine(cur, line)
	return &Macro{Name: name, Params: params, Body: body}, skipToEOL(nameTok), true
}

// collectSameLine copies every token on line line starting at tok into
// a fresh detached List — the macro's body range (spec §3: "[value,
// end)", the tokens on the same source line").
func collectSameLine(tok *Token, line int) *List {
	body := NewList()
	for tok != nil && tok.Loc.Line == line {
		body.AppendCopy(tok, tok.Loc)
		tok = tok.Next()
	}
	return body
}

// skipToEOL returns the first token after tok's line — used both to
// find where a well-formed directive's line ends and, for a malformed
// one, simply to resynchronize the driver past it.
func skipToEOL(tok *Token) *Token {
	if tok == nil {
		return nil
	}
	line := tok.Loc.Line
	for tok != nil && tok.Loc.Line == line {
		tok = tok.Next()
	}
	return tok
}
