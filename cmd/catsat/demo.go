package main

import (
	"fmt"
	"log"
	"os"

	catsat "github.com/ianhorswill/catsat-go"
)

// runDemo builds and solves one of the end-to-end scenarios from
// spec §8.
func runDemo(name string, seed int64, verbose bool) {
	opts := []catsat.Option{}
	if seed != 0 {
		opts = append(opts, catsat.WithSeed(seed))
	}
	switch name {
	case "rooks":
		demoRooks(opts)
	case "murder":
		demoMurder(opts, verbose)
	default:
		log.Fatalf("unknown demo %q (want rooks or murder)", name)
	}
}

// demoRooks places 8 non-attacking rooks on an 8x8 board: exactly one
// rook per row and per column (spec §8, scenario 1).
func demoRooks(opts []catsat.Option) {
	const n = 8
	p := catsat.New(opts...)
	rook := p.Predicate("rook")

	var all []catsat.Literal
	board := make([][]catsat.Literal, n)
	for i := 0; i < n; i++ {
		board[i] = make([]catsat.Literal, n)
		for j := 0; j < n; j++ {
			board[i][j] = rook(i, j)
			all = append(all, board[i][j])
		}
	}
	if err := p.Exactly(n, all...); err != nil {
		log.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if err := p.Unique(board[i]...); err != nil {
			log.Fatal(err)
		}
	}
	for j := 0; j < n; j++ {
		col := make([]catsat.Literal, n)
		for i := 0; i < n; i++ {
			col[i] = board[i][j]
		}
		if err := p.Unique(col...); err != nil {
			log.Fatal(err)
		}
	}

	soln, err := p.Solve()
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if soln.Holds(board[i][j]) {
				fmt.Print("R ")
			} else {
				fmt.Print(". ")
			}
		}
		fmt.Println()
	}
}

// demoMurder builds the fluent/action murder-mystery scenario (spec §8,
// scenario 2): at most one of {fred, lefty} is alive at the final
// timestep, via a kill(x,y,t) action with the classic STRIPS-style
// precondition/effect/frame axioms.
func demoMurder(opts []catsat.Option, verbose bool) {
	const horizon = 10
	cast := []string{"fred", "lefty"}
	p := catsat.New(opts...)
	alive := p.Predicate("alive")
	kill := p.Predicate("kill")

	for _, c := range cast {
		if err := p.Assert(alive(c, 0)); err != nil {
			log.Fatal(err)
		}
	}

	for t := 0; t < horizon-1; t++ {
		for _, a := range cast {
			for _, b := range cast {
				if a == b {
					if err := p.Assert(catsat.Neg(kill(a, b, t).Prop)); err != nil {
						log.Fatal(err)
					}
					continue
				}
				// Precondition: kill(a,b,t) requires both alive at t.
				if err := p.AssertImplication(alive(a, t), kill(a, b, t)); err != nil {
					log.Fatal(err)
				}
				if err := p.AssertImplication(alive(b, t), kill(a, b, t)); err != nil {
					log.Fatal(err)
				}
				// Effect: kill(a,b,t) deletes alive(b,t+1).
				if err := p.AssertImplication(catsat.Neg(alive(b, t+1).Prop), kill(a, b, t)); err != nil {
					log.Fatal(err)
				}
			}
		}
		// Frame axioms: anyone alive at t stays alive at t+1 unless
		// someone killed them, and death persists (once dead, stays
		// dead) so a later kill can't resurrect a victim.
		for _, b := range cast {
			var killers []catsat.Literal
			for _, a := range cast {
				if a != b {
					killers = append(killers, kill(a, b, t))
				}
			}
			body := append([]catsat.Literal{alive(b, t)}, negateAll(killers)...)
			if err := p.AssertImplication(alive(b, t+1), body...); err != nil {
				log.Fatal(err)
			}
			if err := p.AssertImplication(catsat.Neg(alive(b, t+1).Prop), catsat.Neg(alive(b, t).Prop)); err != nil {
				log.Fatal(err)
			}
		}
	}

	var aliveAtEnd []catsat.Literal
	for _, c := range cast {
		aliveAtEnd = append(aliveAtEnd, alive(c, horizon-1))
	}
	if err := p.AtMost(1, aliveAtEnd...); err != nil {
		log.Fatal(err)
	}

	soln, err := p.Solve()
	if err != nil {
		log.Fatal(err)
	}
	for t := 0; t < horizon-1; t++ {
		for _, a := range cast {
			for _, b := range cast {
				if a != b && soln.Holds(kill(a, b, t)) {
					fmt.Printf("t=%d: %s kills %s\n", t, a, b)
				}
			}
		}
	}
	if verbose {
		fmt.Fprintln(os.Stderr, soln)
	}
}

func negateAll(lits []catsat.Literal) []catsat.Literal {
	out := make([]catsat.Literal, len(lits))
	for i, l := range lits {
		out[i] = l.Negate()
	}
	return out
}
