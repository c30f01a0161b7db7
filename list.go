package cpp

// List is a doubly-linked, owning sequence of tokens (spec §3/§4.2).
// A Token's identity is its address within the List that owns it;
// tokens are never shared across two Lists — Copy always allocates
// fresh ones.
type List struct {
	head, tail *Token
	len        int
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Front returns the first token, or nil if the list is empty.
func (l *List) Front() *Token { return l.head }

// Back returns the last token — the "end-of-list lookup" of spec §4.2.
func (l *List) Back() *Token { return l.tail }

// Len returns the number of tokens currently in the list.
func (l *List) Len() int { return l.len }

// Append links tok at the tail. tok must be detached (no prev/next,
// no owning list) — Append takes ownership.
func (l *List) Append(tok *Token) {
	tok.list = l
	tok.prev = l.tail
	tok.next = nil
	if l.tail != nil {
		l.tail.next = tok
	} else {
		l.head = tok
	}
	l.tail = tok
	l.len++
}

// AppendText is a convenience for Append(NewToken(text, loc)).
func (l *List) AppendText(text string, loc Location) *Token {
	tok := NewToken(text, loc)
	l.Append(tok)
	return tok
}

// AppendCopy appends a detached copy of tok, optionally relocated to
// loc, and returns the new token.
func (l *List) AppendCopy(tok *Token, loc Location) *Token {
	c := tok.copyAt(loc)
	l.Append(c)
	return c
}

// Delete unlinks and discards tok, rewiring its neighbors. tok must
// belong to l; deleting a token not in the list is a no-op.
func (l *List) Delete(tok *Token) {
	if tok == nil || tok.list != l {
		return
	}
	if tok.prev != nil {
		tok.prev.next = tok.next
	} else {
		l.head = tok.next
	}
	if tok.next != nil {
		tok.next.prev = tok.prev
	} else {
		l.tail = tok.prev
	}
	tok.prev, tok.next, tok.list = nil, nil, nil
	l.len--
}

// Copy produces a new List holding freshly allocated tokens with the
// same text, location and attribution as the originals. The copy owns
// its tokens independently of l.
func (l *List) Copy() *List {
	out := NewList()
	for t := l.head; t != nil; t = t.next {
		out.Append(t.copy())
	}
	return out
}

// Slice returns the token texts in order, mainly for test assertions.
func (l *List) Slice() []string {
	out := make([]string, 0, l.len)
	for t := l.head; t != nil; t = t.next {
		out = append(out, t.Text)
	}
	return out
}
