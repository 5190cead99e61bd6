package cnf

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseDIMACS(t *testing.T) {
	for _, tt := range []struct {
		text string
		want []Clause
	}{
		{
			text: "c No vars or clauses\np cnf 0 0\n",
			want: nil,
		},
		{
			text: "c 1 var, 1 clause\np cnf 1 1\n1 0\n",
			want: []Clause{{1}},
		},
		{
			text: "c Empty clauses\np cnf 3 5\n1 3 0 0 -3 0\n0 -2 -1\n",
			want: []Clause{{1, 3}, {}, {-3}, {}, {-2, -1}},
		},
		{
			text: "p cnf 2 2\n1 2 0\n-1 -2 0\n",
			want: []Clause{{1, 2}, {-1, -2}},
		},
	} {
		t.Run("", func(t *testing.T) {
			got, err := ParseDIMACS(strings.NewReader(tt.text))
			if err != nil {
				t.Fatalf("ParseDIMACS: %s", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ParseDIMACS (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseDIMACSErrors(t *testing.T) {
	for _, text := range []string{
		"p cnf 1 1\np cnf 1 1\n",
		"p cnf 1\n",
		"p dnf 1 1\n",
		"p cnf 1 1\n1 2 0\n",
	} {
		if _, err := ParseDIMACS(strings.NewReader(text)); err == nil {
			t.Errorf("ParseDIMACS(%q): expected an error", text)
		}
	}
}

func TestWriteDIMACSRoundTrip(t *testing.T) {
	clauses := []Clause{{1, 2}, {-1, -2}, {3}}
	var b strings.Builder
	if err := WriteDIMACS(&b, clauses); err != nil {
		t.Fatalf("WriteDIMACS: %s", err)
	}
	got, err := ParseDIMACS(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("ParseDIMACS(WriteDIMACS(...)): %s", err)
	}
	if diff := cmp.Diff(clauses, got); diff != "" {
		t.Errorf("round-trip (-want +got):\n%s", diff)
	}
}
