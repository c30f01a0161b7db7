// Command cpp is a thin demonstration driver around the cpp package.
// It is explicitly outside the preprocessor core (spec §1: "command-
// line driver... out of scope"): file I/O, flag parsing and diagnostic
// formatting all live here, never in the core package.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"cpp"
)

func main() {
	defines := stringList{}
	flag.Var(&defines, "D", "predefine name[=value], may be repeated")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: cpp [-D name[=value]]... <file>")
		os.Exit(2)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "cpp: %v\n", err)
		os.Exit(1)
	}

	predefines := map[string]string{}
	for _, d := range defines {
		name, value, _ := strings.Cut(d, "=")
		predefines[name] = value
	}

	raw, err := cpp.Lex(args[0], string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "cpp: %v\n", err)
		os.Exit(1)
	}

	out, err := cpp.Preprocess(raw, predefines)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cpp: %v\n", err)
		os.Exit(1)
	}

	if err := out.Dump(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "cpp: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
}

// stringList implements flag.Value so -D can be repeated.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
