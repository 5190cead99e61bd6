package catsat

import "math/rand"

// options holds the recognized tunables from spec §6: maxTries, maxFlips,
// noise, tight, maxFloatTries, quantizationTolerance, plus an optional
// PRNG seed for reproducible runs.
type options struct {
	maxTries              int
	maxFlips              int
	noise                 int
	tight                 bool
	maxFloatTries         int
	quantizationTolerance float32
	seed                  int64
	useSeed               bool
}

func defaultOptions() options {
	return options{
		maxTries:              100,
		maxFlips:              10000,
		noise:                 50,
		tight:                 true,
		maxFloatTries:         10,
		quantizationTolerance: 1e-5,
	}
}

// Option configures a Problem at construction time, following the
// functional-options idiom.
type Option func(*options)

// WithMaxTries sets the number of random restarts the boolean search
// attempts before giving up.
func WithMaxTries(n int) Option { return func(o *options) { o.maxTries = n } }

// WithMaxFlips sets the number of flips attempted per try.
func WithMaxFlips(n int) Option { return func(o *options) { o.maxFlips = n } }

// WithNoise sets the percent chance, in [0,100], of a random-walk move
// instead of a greedy one.
func WithNoise(pct int) Option { return func(o *options) { o.noise = pct } }

// WithTight enables or disables the pre-solve tightness check (disabling
// it is only safe if the caller already knows the program is tight).
func WithTight(tight bool) Option { return func(o *options) { o.tight = tight } }

// WithMaxFloatTries sets the number of sampling retries the float theory
// attempts per boolean candidate before reporting failure.
func WithMaxFloatTries(n int) Option { return func(o *options) { o.maxFloatTries = n } }

// WithQuantizationTolerance sets the jitter tolerance used when rounding
// to a quantization grid.
func WithQuantizationTolerance(t float32) Option {
	return func(o *options) { o.quantizationTolerance = t }
}

// WithSeed fixes the PRNG seed, making a run reproducible (spec §5:
// "seeding the PRNG makes a run reproducible").
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed; o.useSeed = true }
}

// MaxFloatTries exposes the configured float-sampling retry budget to
// theory solvers registered on this Problem.
func (p *Problem) MaxFloatTries() int { return p.opts.maxFloatTries }

// QuantizationTolerance exposes the configured quantization jitter
// tolerance to theory solvers registered on this Problem.
func (p *Problem) QuantizationTolerance() float32 { return p.opts.quantizationTolerance }

// Rand returns the Problem's PRNG, shared with any registered theory so
// sampling stays reproducible under WithSeed.
func (p *Problem) Rand() *rand.Rand { return p.rng }
