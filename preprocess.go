package cpp

// Preprocess runs the single forward pass of spec §4.6 over raw: each
// predefine is installed as if by `#define name value`, then every
// token is routed to directive handling, drop, expand, or emit. It is
// a pure function of its arguments — no package-level mutable state
// (spec §5), so independent calls on disjoint inputs never interfere.
func Preprocess(raw *List, predefines map[string]string) (*List, error) {
	table := NewTable()
	for name, value := range predefines {
		table.DefinePredefined(name, value)
	}

	output := NewList()
	stack := newCondStack()

	cur := raw.Front()
	for cur != nil {
		if cur.Text == "#" && isLineStart(cur) {
			next, err := handleDirective(table, stack, cur)
			if err != nil {
				return nil, err
			}
			cur = next
			continue
		}

		if stack.top() != condKeep {
			cur = skipToEOL(cur)
			continue
		}

		if cur.IsName() {
			if _, ok := table.Lookup(cur.Text); ok {
				next, err := expand(table, output, cur.Loc, cur)
				if err != nil {
					return nil, err
				}
				cur = next
				continue
			}
		}

		output.AppendCopy(cur, cur.Loc)
		cur = cur.Next()
	}
	return output, nil
}

// isLineStart reports whether tok has no predecessor on its own
// source line — the definition of "directive position" (spec §4.6).
func isLineStart(tok *Token) bool {
	prev := tok.Prev()
	return prev == nil || prev.Loc.Line != tok.Loc.Line
}

// handleDirective dispatches on the keyword following a line-leading
// '#' (spec §4.6's table) and returns the cursor for the next line.
// Any keyword other than the seven spec.md names — including ones
// this core deliberately doesn't support, like `undef` or `include` —
// is treated as malformed: consumed silently, nothing emitted.
func handleDirective(table *Table, stack *condStack, hashTok *Token) (*Token, error) {
	kwTok := hashTok.Next()
	if kwTok == nil || kwTok.Loc.Line != hashTok.Loc.Line || !kwTok.IsName() {
		return skipToEOL(hashTok), nil
	}

	switch kwTok.Text {
	case "define":
		rest := skipToEOL(hashTok)
		if stack.top() == condKeep {
			if m, _, ok := parseDefine(kwTok.Next()); ok {
				table.Define(m)
			}
		}
		return rest, nil

	case "if":
		condList := collectSameLine(kwTok.Next(), hashTok.Loc.Line)
		rest := skipToEOL(hashTok)
		cond := false
		if stack.top() != condDrop {
			val, err := Evaluate(table, condList)
			if err != nil {
				return nil, err
			}
			cond = val != 0
		}
		stack.pushIf(cond)
		return rest, nil

	case "ifdef", "ifndef":
		nameTok := kwTok.Next()
		rest := skipToEOL(hashTok)
		cond := false
		if stack.top() != condDrop {
			defined := nameTok != nil && nameTok.IsName() && table.Defined(nameTok.Text)
			if kwTok.Text == "ifndef" {
				cond = !defined
			} else {
				cond = defined
			}
		}
		stack.pushIf(cond)
		return rest, nil

	case "elif":
		condList := collectSameLine(kwTok.Next(), hashTok.Loc.Line)
		rest := skipToEOL(hashTok)
		if stack.top() == condElseKeep {
			val, err := Evaluate(table, condList)
			if err != nil {
				return nil, err
			}
			stack.elif(val != 0)
		} else {
			stack.elif(false)
		}
		return rest, nil

	case "else":
		stack.else_()
		return skipToEOL(hashTok), nil

	case "endif":
		stack.endif()
		return skipToEOL(hashTok), nil

	default:
		return skipToEOL(hashTok), nil
	}
}
