package catsat

import "testing"

// TestMurderMystery builds the fluent/action scenario from spec.md §8
// scenario 2: two suspects, a kill(a,b,t) action with preconditions,
// effects, and frame axioms (including death's persistence) over a short
// horizon, and a goal that at most one of them survives. It checks the
// scenario's own invariant: if any kills occur, they all share a single
// timestep (death can't be undone, so a later "kill" of an already-dead
// victim would otherwise let two distinct timesteps each show a kill).
func TestMurderMystery(t *testing.T) {
	const horizon = 6
	cast := []string{"fred", "lefty"}
	p := New(WithSeed(1), WithMaxTries(200), WithMaxFlips(20000))
	alive := p.Predicate("alive")
	kill := p.Predicate("kill")

	for _, c := range cast {
		if err := p.Assert(alive(c, 0)); err != nil {
			t.Fatalf("Assert(alive(%s,0)): %v", c, err)
		}
	}

	for ts := 0; ts < horizon-1; ts++ {
		for _, a := range cast {
			for _, b := range cast {
				if a == b {
					if err := p.Assert(Neg(kill(a, b, ts).Prop)); err != nil {
						t.Fatalf("Assert(not kill(%s,%s,%d)): %v", a, b, ts, err)
					}
					continue
				}
				if err := p.AssertImplication(alive(a, ts), kill(a, b, ts)); err != nil {
					t.Fatalf("AssertImplication precondition: %v", err)
				}
				if err := p.AssertImplication(alive(b, ts), kill(a, b, ts)); err != nil {
					t.Fatalf("AssertImplication precondition: %v", err)
				}
				if err := p.AssertImplication(Neg(alive(b, ts+1).Prop), kill(a, b, ts)); err != nil {
					t.Fatalf("AssertImplication effect: %v", err)
				}
			}
		}
		for _, b := range cast {
			var killers []Literal
			for _, a := range cast {
				if a != b {
					killers = append(killers, kill(a, b, ts))
				}
			}
			negated := make([]Literal, len(killers))
			for i, k := range killers {
				negated[i] = k.Negate()
			}
			body := append([]Literal{alive(b, ts)}, negated...)
			if err := p.AssertImplication(alive(b, ts+1), body...); err != nil {
				t.Fatalf("AssertImplication frame: %v", err)
			}
			if err := p.AssertImplication(Neg(alive(b, ts+1).Prop), Neg(alive(b, ts).Prop)); err != nil {
				t.Fatalf("AssertImplication death-persists: %v", err)
			}
		}
	}

	var aliveAtEnd []Literal
	for _, c := range cast {
		aliveAtEnd = append(aliveAtEnd, alive(c, horizon-1))
	}
	if err := p.AtMost(1, aliveAtEnd...); err != nil {
		t.Fatalf("AtMost: %v", err)
	}

	soln, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	aliveCount := 0
	for _, c := range cast {
		if soln.Holds(alive(c, horizon-1)) {
			aliveCount++
		}
	}
	if aliveCount > 1 {
		t.Fatalf("expected at most one survivor, got %d", aliveCount)
	}

	killTimestep := -1
	for ts := 0; ts < horizon-1; ts++ {
		for _, a := range cast {
			for _, b := range cast {
				if a == b {
					continue
				}
				if soln.Holds(kill(a, b, ts)) {
					if killTimestep != -1 && killTimestep != ts {
						t.Fatalf("kills occurred at both t=%d and t=%d; death should not permit a second kill", killTimestep, ts)
					}
					killTimestep = ts
				}
			}
		}
	}
}
