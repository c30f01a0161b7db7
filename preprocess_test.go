package cpp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func preprocessSource(t *testing.T, source string, predefines map[string]string) []string {
	t.Helper()
	raw, err := Lex("f", source)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	out, err := Preprocess(raw, predefines)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	return out.Slice()
}

func TestPreprocessIfElse(t *testing.T) {
	got := preprocessSource(t, "#if 1+2*3==7\nx\n#else\ny\n#endif\n", nil)
	want := []string{"x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPreprocessDefinedWithEmptyPredefine(t *testing.T) {
	got := preprocessSource(t, "#if defined FOO\nyes\n#endif\n", map[string]string{"FOO": ""})
	want := []string{"yes"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPreprocessElifAfterTakenIfBecomesInert(t *testing.T) {
	source := "#if 1\na\n#elif 1\nb\n#else\nc\n#endif\n"
	got := preprocessSource(t, source, nil)
	want := []string{"a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPreprocessElifTaken(t *testing.T) {
	source := "#if 0\na\n#elif 1\nb\n#else\nc\n#endif\n"
	got := preprocessSource(t, source, nil)
	want := []string{"b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPreprocessNestedConditionals(t *testing.T) {
	source := "#if 1\n#if 0\ninner_dropped\n#else\ninner_kept\n#endif\nouter\n#endif\n"
	got := preprocessSource(t, source, nil)
	want := []string{"inner_kept", "outer"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPreprocessIfdefIfndef(t *testing.T) {
	source := "#define X 1\n#ifdef X\nhas_x\n#endif\n#ifndef Y\nno_y\n#endif\n"
	got := preprocessSource(t, source, nil)
	want := []string{"has_x", "no_y"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPreprocessUnbalancedEndifIsIgnored(t *testing.T) {
	got := preprocessSource(t, "#endif\nstill_here\n", nil)
	want := []string{"still_here"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPreprocessUnknownDirectiveIsIgnored(t *testing.T) {
	got := preprocessSource(t, "#include <stdio.h>\nkept\n", nil)
	want := []string{"kept"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPreprocessMalformedDefineIsIgnored(t *testing.T) {
	got := preprocessSource(t, "#define 123 oops\nafter\n", nil)
	want := []string{"after"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPreprocessRoundTripWithoutDirectivesOrMacros(t *testing.T) {
	source := "int main ( ) { return 0 ; }"
	raw, _ := Lex("f", source)
	out, err := Preprocess(raw, nil)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	if diff := cmp.Diff(raw.Slice(), out.Slice()); diff != "" {
		t.Fatalf("round-trip mismatch (-input +output):\n%s", diff)
	}
}

func TestPreprocessMacroExpansionInsideOutput(t *testing.T) {
	got := preprocessSource(t, "#define A 2+3\nA*A\n", nil)
	want := []string{"2", "+", "3", "*", "2", "+", "3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
