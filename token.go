package cpp

// Token is one lexeme plus the location it came from. It is the unit
// of currency for every later stage: the lexer produces them, the
// macro engine consumes and emits them, the driver threads them
// through to the final output list.
//
// A Token's classification is derived from its text rather than
// stored redundantly (spec §3): IsName, IsNumber and Op recompute it
// on demand from Text[0].
type Token struct {
	Text string
	Loc  Location

	// Macro names the macro whose expansion produced this token, or
	// is empty if the token came straight from source (including source
	// tokens substituted for a macro argument; see relabelFrom in
	// expand.go, which re-labels only non-empty attributions).
	Macro string

	prev, next *Token
	list       *List
}

// NewToken allocates a detached token. Callers append it to a List to
// give it a home; an unattached Token's prev/next are both nil.
func NewToken(text string, loc Location) *Token {
	return &Token{Text: text, Loc: loc}
}

// Next returns the token's successor in its owning list, or nil at
// the tail.
func (t *Token) Next() *Token { return t.next }

// Prev returns the token's predecessor in its owning list, or nil at
// the head.
func (t *Token) Prev() *Token { return t.prev }

// Equal reports whether the token's text is exactly s.
func (t *Token) Equal(s string) bool { return t != nil && t.Text == s }

// IsName reports whether t classifies as a name: its text starts with
// a letter or underscore (and per spec is therefore not a number).
func (t *Token) IsName() bool {
	if t.Text == "" {
		return false
	}
	c := t.Text[0]
	return isAlpha(c)
}

// IsNumber reports whether t classifies as a number: its text starts
// with a decimal digit.
func (t *Token) IsNumber() bool {
	if t.Text == "" {
		return false
	}
	return isDigit(t.Text[0])
}

// Op returns the single operator character this token represents, or
// 0 if the token is not exactly one non-alphanumeric, non-space
// character.
func (t *Token) Op() byte {
	if len(t.Text) != 1 {
		return 0
	}
	c := t.Text[0]
	if isAlpha(c) || isDigit(c) || c == ' ' || c == '\t' {
		return 0
	}
	return c
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// copy produces a detached duplicate of t: same text, location and
// macro attribution, but no linkage and no owning list.
func (t *Token) copy() *Token {
	return &Token{Text: t.Text, Loc: t.Loc, Macro: t.Macro}
}

// copyAt is copy with the location overridden — used when a macro
// body token is emitted at the invocation site rather than at its own
// source position.
func (t *Token) copyAt(loc Location) *Token {
	c := t.copy()
	c.Loc = loc
	return c
}
