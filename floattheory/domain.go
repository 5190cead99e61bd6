// Package floattheory implements CatSAT's float theory: a theory solver
// (satisfying catsat.Theory) that narrows and samples bounded
// floating-point variables related by ordering and arithmetic
// constraints, consulted by the boolean WalkSAT core on every candidate
// model (spec §4.4).
package floattheory

import "github.com/ianhorswill/catsat-go/interval"

// Domain is a closed interval plus an optional quantization step: 0
// means dense, otherwise the domain admits only integer multiples of
// Quantization (spec §3, "FloatDomain"). Tolerance absorbs floating-point
// jitter when snapping to the quantization grid; it is filled in from the
// owning Problem's WithQuantizationTolerance option (see Solver.NewVariable)
// unless the caller already set it explicitly.
type Domain struct {
	Lo, Hi       float32
	Quantization float32
	Tolerance    float32
}

// NewDomain builds a dense (unquantized) domain [lo,hi].
func NewDomain(lo, hi float32) Domain {
	return Domain{Lo: lo, Hi: hi}
}

// NewQuantizedDomain builds a domain restricted to multiples of q.
func NewQuantizedDomain(lo, hi, q float32) Domain {
	return Domain{Lo: lo, Hi: hi, Quantization: q}
}

// interval returns the domain's bounds as a quantized interval.Interval,
// the starting point for a variable's per-solve bounds.
func (d Domain) interval() interval.Interval {
	return interval.Quantize(interval.New(d.Lo, d.Hi), d.Quantization, d.Tolerance)
}
