package cpp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// installDefines lexes and installs a run of #define lines into a
// fresh table, returning the table plus the remaining (non-define)
// source text's token list.
func installDefines(t *testing.T, source string) *Table {
	t.Helper()
	table := NewTable()
	list, _ := Lex("f", source)
	cur := list.Front()
	for cur != nil {
		if cur.Text != "#" {
			t.Fatalf("installDefines only accepts #define lines, got %q", cur.Text)
		}
		kw := cur.Next()
		m, rest, ok := parseDefine(kw.Next())
		if !ok {
			t.Fatalf("parseDefine failed on directive at line %d", cur.Loc.Line)
		}
		table.Define(m)
		cur = rest
	}
	return table
}

func expandSource(t *testing.T, table *Table, source string) []string {
	t.Helper()
	list, _ := Lex("f", source)
	out := NewList()
	cur := list.Front()
	for cur != nil {
		if cur.IsName() {
			if _, ok := table.Lookup(cur.Text); ok {
				next, err := expand(table, out, cur.Loc, cur)
				if err != nil {
					t.Fatalf("expand() error = %v", err)
				}
				cur = next
				continue
			}
		}
		out.AppendCopy(cur, cur.Loc)
		cur = cur.Next()
	}
	return out.Slice()
}

func TestExpandObjectLikeNoReparenthesization(t *testing.T) {
	table := installDefines(t, "#define A 2+3\n")
	got := expandSource(t, table, "A*A")
	want := []string{"2", "+", "3", "*", "2", "+", "3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandFuncLikePaste(t *testing.T) {
	table := installDefines(t, "#define F(a,b) a##b\n")
	got := expandSource(t, table, "F(foo, bar)")
	want := []string{"foobar"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandStringize(t *testing.T) {
	table := installDefines(t, "#define S(x) #x\n")
	got := expandSource(t, table, "S(1 + 2)")
	want := []string{`"1+2"`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandBluePaintSuppressesReentry(t *testing.T) {
	table := installDefines(t, "#define A B\n#define B A\n")
	got := expandSource(t, table, "A")
	want := []string{"A"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandSelfReferentialObjectLike(t *testing.T) {
	table := installDefines(t, "#define A A\n")
	got := expandSource(t, table, "A")
	want := []string{"A"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandArityMismatchEmitsBareName(t *testing.T) {
	table := installDefines(t, "#define F(a,b) a b\n")
	got := expandSource(t, table, "F(only_one)")
	want := []string{"F", "(", "only_one", ")"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandFuncLikeWithoutParensIsNotInvoked(t *testing.T) {
	table := installDefines(t, "#define F(a) a\n")
	got := expandSource(t, table, "F + 1")
	want := []string{"F", "+", "1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandZeroParamInvocation(t *testing.T) {
	table := installDefines(t, "#define G() 42\n")
	got := expandSource(t, table, "G()")
	want := []string{"42"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandNestedArgumentMacroExpandsInCallerContext(t *testing.T) {
	table := installDefines(t, "#define INNER 7\n#define ID(x) x\n")
	got := expandSource(t, table, "ID(INNER)")
	want := []string{"7"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandPasteAcrossMultipleOperators(t *testing.T) {
	table := installDefines(t, "#define CAT3(a,b,c) a##b##c\n")
	got := expandSource(t, table, "CAT3(x,y,z)")
	want := []string{"xyz"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
