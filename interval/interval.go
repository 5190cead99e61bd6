// Package interval implements closed-interval arithmetic over float32
// bounds, the numeric substrate for the float theory solver (see
// package floattheory). All operations bound every possible result of
// the corresponding pointwise operation on interval members; narrowing
// callers rely on that soundness to never discard a legal value.
package interval

import "math"

// DefaultTolerance absorbs floating-point jitter when comparing a value
// against a quantization grid. Callers that carry a caller-configured
// tolerance (see catsat.WithQuantizationTolerance) should pass it
// explicitly to RoundUp/RoundDown/Quantize/OnGrid instead; a
// non-positive tol argument falls back to this default.
const DefaultTolerance = 1e-5

// Interval is a closed interval [Lo, Hi] of float32 values. NaN bounds are
// forbidden; callers must pre-clamp infinities and non-finite inputs
// before constructing one.
type Interval struct {
	Lo, Hi float32
}

// Full is the interval containing every representable value.
func Full() Interval {
	return Interval{Lo: -math.MaxFloat32, Hi: math.MaxFloat32}
}

// Point returns the degenerate interval [x, x].
func Point(x float32) Interval {
	return Interval{Lo: x, Hi: x}
}

// New builds an interval, panicking if either bound is NaN. lo > hi is
// accepted and yields an interval for which Empty reports true.
func New(lo, hi float32) Interval {
	if isNaN(lo) || isNaN(hi) {
		panic("interval: NaN bound")
	}
	return Interval{Lo: lo, Hi: hi}
}

func isNaN(x float32) bool { return x != x }

// Empty reports whether the interval contains no values.
func (iv Interval) Empty() bool { return iv.Hi < iv.Lo }

// Unique reports whether the interval contains exactly one value.
func (iv Interval) Unique() bool { return iv.Hi == iv.Lo }

// CrossesZero reports whether the interval's interior contains zero.
func (iv Interval) CrossesZero() bool { return iv.Lo < 0 && iv.Hi > 0 }

// Contains reports whether x lies within the interval.
func (iv Interval) Contains(x float32) bool { return x >= iv.Lo && x <= iv.Hi }

// Add returns the interval of possible sums a+b for a in iv, b in other.
func (iv Interval) Add(other Interval) Interval {
	return Interval{Lo: iv.Lo + other.Lo, Hi: iv.Hi + other.Hi}
}

// Sub returns the interval of possible differences a-b.
func (iv Interval) Sub(other Interval) Interval {
	return Interval{Lo: iv.Lo - other.Hi, Hi: iv.Hi - other.Lo}
}

// Neg returns the interval of possible negations -a.
func (iv Interval) Neg() Interval {
	return Interval{Lo: -iv.Hi, Hi: -iv.Lo}
}

// Mul returns the interval of possible products a*b, by taking the min
// and max of the four corner products.
func (iv Interval) Mul(other Interval) Interval {
	c1 := iv.Lo * other.Lo
	c2 := iv.Lo * other.Hi
	c3 := iv.Hi * other.Lo
	c4 := iv.Hi * other.Hi
	return Interval{Lo: min4(c1, c2, c3, c4), Hi: max4(c1, c2, c3, c4)}
}

// Scale returns the interval scaled by a constant factor k (k may be
// negative, which flips the bounds).
func (iv Interval) Scale(k float32) Interval {
	a, b := iv.Lo*k, iv.Hi*k
	if k >= 0 {
		return Interval{Lo: a, Hi: b}
	}
	return Interval{Lo: b, Hi: a}
}

// Div returns the interval of possible quotients a/b for a in iv, b in
// other, per spec.md §4.3: division by an interval straddling zero
// widens to (part of) the full real line rather than failing, since the
// caller is expected to narrow again once more information is available.
func (iv Interval) Div(other Interval) Interval {
	switch {
	case other.Lo == 0 && other.Hi == 0:
		return Full()
	case other.Lo == 0 && other.Hi > 0:
		// b in (0, hi]; 1/b in [1/hi, +inf)
		lo := min2(iv.Hi/other.Hi, iv.Lo/other.Hi)
		return Interval{Lo: lo, Hi: math.MaxFloat32}
	case other.Hi == 0 && other.Lo < 0:
		// b in [lo, 0); 1/b in (-inf, 1/lo]
		hi := max2(iv.Hi/other.Lo, iv.Lo/other.Lo)
		return Interval{Lo: -math.MaxFloat32, Hi: hi}
	case other.CrossesZero():
		return Full()
	default:
		recip := Interval{Lo: 1 / other.Hi, Hi: 1 / other.Lo}
		return iv.Mul(recip)
	}
}

// Pow returns the interval of possible values a^n for a in iv, n a
// non-negative integer, using standard interval-power rules that account
// for the sign of iv and the parity of n.
func (iv Interval) Pow(n int) Interval {
	if n == 0 {
		return Point(1)
	}
	if n == 1 {
		return iv
	}
	even := n%2 == 0
	lo, hi := powf(iv.Lo, n), powf(iv.Hi, n)
	if !even {
		return Interval{Lo: lo, Hi: hi}
	}
	// Even power: result is always >= 0.
	if iv.Lo >= 0 {
		return Interval{Lo: lo, Hi: hi}
	}
	if iv.Hi <= 0 {
		return Interval{Lo: hi, Hi: lo}
	}
	// Crosses zero: minimum is 0, maximum is the larger of the two corner
	// magnitudes raised to the power.
	return Interval{Lo: 0, Hi: max2(lo, hi)}
}

func powf(x float32, n int) float32 {
	return float32(math.Pow(float64(x), float64(n)))
}

// Union returns the smallest interval containing both iv and other.
func (iv Interval) Union(other Interval) Interval {
	if iv.Empty() {
		return other
	}
	if other.Empty() {
		return iv
	}
	return Interval{Lo: min2(iv.Lo, other.Lo), Hi: max2(iv.Hi, other.Hi)}
}

// Intersect returns the overlap of iv and other. The result may be
// Empty.
func (iv Interval) Intersect(other Interval) Interval {
	return Interval{Lo: max2(iv.Lo, other.Lo), Hi: min2(iv.Hi, other.Hi)}
}

// RoundUp snaps x up to the nearest multiple of q, tolerating floating
// point jitter of up to tol against an exact multiple. A non-positive
// tol falls back to DefaultTolerance.
func RoundUp(x, q, tol float32) float32 {
	if q <= 0 {
		return x
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}
	n := x / q
	rounded := float32(math.Ceil(float64(n) - float64(tol)))
	return rounded * q
}

// RoundDown snaps x down to the nearest multiple of q, tolerating
// floating point jitter of up to tol against an exact multiple. A
// non-positive tol falls back to DefaultTolerance.
func RoundDown(x, q, tol float32) float32 {
	if q <= 0 {
		return x
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}
	n := x / q
	rounded := float32(math.Floor(float64(n) + float64(tol)))
	return rounded * q
}

// Quantize rounds iv's lower bound up and upper bound down to the
// quantization grid q. If q is 0 the domain is dense and iv is returned
// unchanged. The result may be Empty if no grid point lies in iv.
func Quantize(iv Interval, q, tol float32) Interval {
	if q <= 0 {
		return iv
	}
	return Interval{Lo: RoundUp(iv.Lo, q, tol), Hi: RoundDown(iv.Hi, q, tol)}
}

// OnGrid reports whether x is within tol of a multiple of q. A
// non-positive q (dense domain) always returns true; a non-positive tol
// falls back to DefaultTolerance.
func OnGrid(x, q, tol float32) bool {
	if q <= 0 {
		return true
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}
	n := x / q
	frac := n - float32(math.Round(float64(n)))
	if frac < 0 {
		frac = -frac
	}
	return frac <= tol
}

func min2(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min4(a, b, c, d float32) float32 {
	return min2(min2(a, b), min2(c, d))
}

func max4(a, b, c, d float32) float32 {
	return max2(max2(a, b), max2(c, d))
}
