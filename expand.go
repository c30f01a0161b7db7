package cpp

import (
	"fmt"
	"strings"
)

// activeSet is the "blue paint" set of macro names currently being
// expanded along the call chain (spec §4.4). It is always copied, never
// mutated in place, so that sibling branches of the expansion never
// see each other's additions.
type activeSet map[string]struct{}

func (s activeSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s activeSet) with(name string) activeSet {
	out := make(activeSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	out[name] = struct{}{}
	return out
}

func (s activeSet) empty() bool { return len(s) == 0 }

// maxExpansionDepth bounds the expansion engine's recursion (spec §5:
// "implementers should document a recursion depth limit"). 4096 is far
// beyond any macro nesting a real translation unit produces; it exists
// to turn a pathological or adversarial macro graph into an error
// instead of a stack overflow.
const maxExpansionDepth = 4096

// expand is the entry point the driver calls for a bare top-level
// macro invocation: active_set starts empty (spec §4.6).
func expand(table *Table, output *List, loc Location, nameTok *Token) (*Token, error) {
	return expandOne(table, output, loc, nameTok, activeSet{}, 0)
}

// expandOne implements the expand(output, invocation_location,
// name_token, macros, active_set) contract of spec §4.4. active is the
// set captured at entry — it becomes both this call's active_set_outer
// (threaded to argument expansion and attribution) and, augmented with
// the macro's own name, this call's active_set_inner (threaded to body
// lookups).
func expandOne(table *Table, output *List, loc Location, nameTok *Token, active activeSet, depth int) (*Token, error) {
	if depth > maxExpansionDepth {
		return nil, fmt.Errorf("%s: %w", loc, ErrExpansionTooDeep)
	}

	m, ok := table.Lookup(nameTok.Text)
	if !ok {
		output.AppendCopy(nameTok, nameTok.Loc)
		return nameTok.Next(), nil
	}

	outer := active
	inner := active.with(m.Name)
	start := output.Back()

	var next *Token
	var err error
	if m.IsObjectLike() {
		err = expandObjectBody(table, output, loc, m, inner, depth+1)
		if err == nil {
			next = nameTok.Next()
		}
	} else {
		next, err = expandFuncLikeInvocation(table, output, loc, nameTok, m, outer, inner, depth+1)
	}
	if err != nil {
		return nil, err
	}

	if outer.empty() {
		relabelFrom(output, start, m.Name)
	}
	return next, nil
}

// relabelFrom implements the attribution re-labelling rule of spec
// §4.4: every token appended since start (exclusive) whose attribution
// is already non-empty is re-attributed to name, the outermost
// expanding macro. Tokens that were never attributed (plain literal
// text) stay unattributed.
func relabelFrom(output *List, start *Token, name string) {
	var t *Token
	if start == nil {
		t = output.Front()
	} else {
		t = start.Next()
	}
	for t != nil {
		if t.Macro != "" {
			t.Macro = name
		}
		t = t.Next()
	}
}

// expandObjectBody walks an object-like macro's body once, emitting a
// copy of each non-expanding token (attributed to m, per spec §4.4)
// and recursively expanding each body token that names a macro not
// already in active.
func expandObjectBody(table *Table, output *List, loc Location, m *Macro, active activeSet, depth int) error {
	cur := m.Body.Front()
	for cur != nil {
		if cur.IsName() && !active.has(cur.Text) {
			if _, ok := table.Lookup(cur.Text); ok {
				next, err := expandOne(table, output, loc, cur, active, depth)
				if err != nil {
					return err
				}
				cur = next
				continue
			}
		}
		tok := output.AppendCopy(cur, loc)
		tok.Macro = m.Name
		cur = cur.Next()
	}
	return nil
}

// expandFuncLikeInvocation captures the call's arguments and walks the
// macro body (spec §4.4's "Function-like expansion"). outer is
// active_set_outer (gates argument expansion and attribution); inner is
// active_set_outer ∪ {m.Name} (gates plain body-token lookups).
func expandFuncLikeInvocation(table *Table, output *List, loc Location, nameTok *Token, m *Macro, outer, inner activeSet, depth int) (*Token, error) {
	if !nameTok.Next().Equal("(") {
		output.AppendCopy(nameTok, nameTok.Loc)
		return nameTok.Next(), nil
	}

	args, after, ok := readArgs(nameTok)
	if !ok {
		output.AppendCopy(nameTok, nameTok.Loc)
		return nameTok.Next(), nil
	}

	if len(m.Params) == 0 && len(args) == 1 && args[0].Len() == 0 {
		args = nil
	}
	if len(args) != len(m.Params) {
		output.AppendCopy(nameTok, nameTok.Loc)
		return nameTok.Next(), nil
	}

	argMap := make(map[string]*List, len(m.Params))
	for i, p := range m.Params {
		argMap[p] = args[i]
	}

	if err := expandFuncLikeBody(table, output, loc, m, argMap, outer, inner, depth); err != nil {
		return nil, err
	}
	return after, nil
}

// readArgs splits the invocation's parenthesized content on top-level
// commas into one detached *List per argument. nameTok.Next() must be
// "(". ok is false if the parentheses never close.
func readArgs(nameTok *Token) (args []*List, after *Token, ok bool) {
	cur := nameTok.Next().Next()
	curArg := NewList()
	depth := 0

	for {
		if cur == nil {
			return nil, nil, false
		}
		switch {
		case cur.Text == "(":
			depth++
			curArg.AppendCopy(cur, cur.Loc)
			cur = cur.Next()
		case cur.Text == ")":
			if depth == 0 {
				args = append(args, curArg)
				return args, cur.Next(), true
			}
			depth--
			curArg.AppendCopy(cur, cur.Loc)
			cur = cur.Next()
		case cur.Text == "," && depth == 0:
			args = append(args, curArg)
			curArg = NewList()
			cur = cur.Next()
		default:
			curArg.AppendCopy(cur, cur.Loc)
			cur = cur.Next()
		}
	}
}

// expandArgInto walks an argument's (raw, captured-at-call-time) token
// range, expanding each token that names a macro not in gate and
// copying everything else verbatim — preserving whatever attribution
// those tokens already carried, per spec §4.4: "arguments are expanded
// in the caller's context, not the callee's."
func expandArgInto(table *Table, output *List, loc Location, arg *List, gate activeSet, depth int) error {
	t := arg.Front()
	for t != nil {
		if t.IsName() && !gate.has(t.Text) {
			if _, ok := table.Lookup(t.Text); ok {
				next, err := expandOne(table, output, loc, t, gate, depth)
				if err != nil {
					return err
				}
				t = next
				continue
			}
		}
		output.AppendCopy(t, loc)
		t = t.Next()
	}
	return nil
}

// stringize implements the `#` operator: the argument is expanded (with
// gate still suppressing active_set_outer members) into a scratch list,
// then its lexemes are concatenated with no separator and quoted
// (spec §4.4, §8 "Stringification preserves lexemes").
func stringize(table *Table, loc Location, arg *List, gate activeSet, depth int) (*Token, error) {
	scratch := NewList()
	if err := expandArgInto(table, scratch, loc, arg, gate, depth); err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteByte('"')
	for t := scratch.Front(); t != nil; t = t.Next() {
		b.WriteString(t.Text)
	}
	b.WriteByte('"')
	return NewToken(b.String(), loc), nil
}

// expandFuncLikeBody ports the substitution algorithm of the teacher's
// subst() (itself a direct port of simplecpp's Macro::expand inner
// loop) to this package's types: walk the macro body, handling two
// adjacent `#` tokens as the paste operator, then a single `#`,
// parameter substitution and plain tokens in that priority order. The lexer never merges two
// "#" characters into one token (mergeOperators only combines
// =/!/</>  with a following "=", and like pairs of "|" or "&"), so a
// macro body written with `##` reaches here as two separate "#"
// tokens; isPasteAt detects that pair the way simplecpp's Macro::expand
// tests tok->op=='#' twice in a row rather than looking for one fused
// token. last tracks the most recently emitted token *from this call*
// so a paste can find its left operand and a paste at the very start
// of the body is detected as dangling.
func expandFuncLikeBody(table *Table, output *List, loc Location, m *Macro, args map[string]*List, outer, inner activeSet, depth int) error {
	var last *Token
	cur := m.Body.Front()

	for cur != nil {
		switch {
		case isPasteAt(cur):
			if last == nil {
				return fmt.Errorf("%s: %w: at start of macro expansion", loc, ErrDanglingPaste)
			}
			rhs := cur.Next().Next()
			if rhs == nil {
				return fmt.Errorf("%s: %w: at end of macro expansion", loc, ErrDanglingPaste)
			}
			if rhs.IsName() {
				if arg, ok := args[rhs.Text]; ok {
					if arg.Len() > 0 {
						first := arg.Front()
						last.Text += first.Text
						for t := first.Next(); t != nil; t = t.Next() {
							tc := output.AppendCopy(t, loc)
							tc.Macro = m.Name
							last = tc
						}
					}
					cur = rhs.Next()
					continue
				}
			}
			last.Text += rhs.Text
			cur = rhs.Next()

		case cur.Text == "#":
			paramTok := cur.Next()
			arg, ok := lookupArg(args, paramTok)
			if !ok {
				return fmt.Errorf("%s: %w", loc, ErrStringizeNotParam)
			}
			strTok, err := stringize(table, loc, arg, outer, depth)
			if err != nil {
				return err
			}
			strTok.Macro = m.Name
			output.Append(strTok)
			last = strTok
			cur = paramTok.Next()

		case cur.IsName() && isParam(args, cur.Text) && isPasteAt(cur.Next()):
			arg := args[cur.Text]
			if arg.Len() == 0 {
				cur = cur.Next() // lands on the paste's first "#"; its rhs supplies the paste
				continue
			}
			for t := arg.Front(); t != nil; t = t.Next() {
				tc := output.AppendCopy(t, loc)
				tc.Macro = m.Name
				last = tc
			}
			cur = cur.Next() // land on the paste's first "#"

		case cur.IsName() && isParam(args, cur.Text):
			arg := args[cur.Text]
			before := output.Back()
			if err := expandArgInto(table, output, loc, arg, outer, depth); err != nil {
				return err
			}
			if output.Back() != before {
				last = output.Back()
			}
			cur = cur.Next()

		case cur.IsName() && !inner.has(cur.Text):
			if _, ok := table.Lookup(cur.Text); ok {
				before := output.Back()
				next, err := expandOne(table, output, loc, cur, inner, depth)
				if err != nil {
					return err
				}
				if output.Back() != before {
					last = output.Back()
				}
				cur = next
				continue
			}
			tok := output.AppendCopy(cur, loc)
			tok.Macro = m.Name
			last = tok
			cur = cur.Next()

		default:
			tok := output.AppendCopy(cur, loc)
			tok.Macro = m.Name
			last = tok
			cur = cur.Next()
		}
	}
	return nil
}

// isPasteAt reports whether t is the first of two adjacent "#" tokens —
// the raw-token shape a `##` in a macro body actually takes, since the
// lexer never fuses them into one token.
func isPasteAt(t *Token) bool {
	return t != nil && t.Text == "#" && t.Next() != nil && t.Next().Text == "#"
}

func isParam(args map[string]*List, name string) bool {
	_, ok := args[name]
	return ok
}

func lookupArg(args map[string]*List, tok *Token) (*List, bool) {
	if tok == nil || !tok.IsName() {
		return nil, false
	}
	arg, ok := args[tok.Text]
	return arg, ok
}
