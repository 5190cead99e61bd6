// Command catsat is a CLI driver for the CatSAT library: it either
// solves a DIMACS CNF file (adapted from the teacher's saturday CLI) or,
// with -demo, runs one of the built-in example scenarios through the
// catsat builder.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	catsat "github.com/ianhorswill/catsat-go"
	"github.com/ianhorswill/catsat-go/cnf"
)

func main() {
	log.SetFlags(0)
	verbose := flag.Bool("v", false, "verbose mode")
	demo := flag.String("demo", "", "run a built-in demo scenario instead of reading DIMACS (rooks, murder)")
	seed := flag.Int64("seed", 0, "PRNG seed (0 means unseeded)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `catsat: a constraint-based procedural content generator.

Usage:

  catsat [-v] [-seed N] [input.cnf]
  catsat -demo rooks|murder [-v] [-seed N]

With no -demo flag, catsat reads a single problem specification in the
DIMACS CNF format and writes either UNSAT, or SAT followed by a line
giving a satisfying assignment as one signed literal per variable.

If no input file is given, catsat reads from standard input.
`)
	}
	flag.Parse()

	if *demo != "" {
		runDemo(*demo, *seed, *verbose)
		return
	}

	var r io.Reader = os.Stdin
	if flag.NArg() >= 1 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		r = f
	}

	clauses, err := cnf.ParseDIMACS(r)
	if err != nil {
		log.Fatalln("Error reading input file as DIMACS CNF:", err)
	}

	opts := []catsat.Option{catsat.WithTight(false)}
	if *seed != 0 {
		opts = append(opts, catsat.WithSeed(*seed))
	}
	p := catsat.New(opts...)
	nbVars := 0
	for _, c := range clauses {
		for _, lit := range c {
			if v := abs(lit); v > nbVars {
				nbVars = v
			}
		}
	}
	props := make([]*catsat.Proposition, nbVars+1)
	for i := 1; i <= nbVars; i++ {
		props[i] = p.GetProposition(fmt.Sprintf("v%d", i))
	}
	for _, c := range clauses {
		lits := make([]catsat.Literal, len(c))
		for i, lit := range c {
			v := props[abs(lit)]
			lits[i] = catsat.Literal{Prop: v, Positive: lit > 0}
		}
		if err := p.AddClause(1, 0, lits...); err != nil {
			log.Fatalln("Error asserting clause:", err)
		}
	}

	soln, err := p.Solve()
	if err != nil {
		if *verbose {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Println("UNSAT")
		return
	}
	fmt.Println("SAT")
	for i := 1; i <= nbVars; i++ {
		if i > 1 {
			fmt.Print(" ")
		}
		if soln.Holds(catsat.Pos(props[i])) {
			fmt.Print(i)
		} else {
			fmt.Print(-i)
		}
	}
	fmt.Println()
	if *verbose {
		fmt.Fprintln(os.Stderr, soln)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
