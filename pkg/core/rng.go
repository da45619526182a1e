package core

// hash is the SplitMix64 finalizer (Sebastiano Vigna), used both to seed
// the per-sample PCG32 stream and as the general-purpose mixer behind
// the deterministic per-pixel-per-sample seed: seed(x,y,s) =
// hash((y*W+x)*S + s).
func hash(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x = x ^ (x >> 31)
	return x
}

// Hash64 exposes the SplitMix64 mixer so callers outside this package
// (the worker loop) can derive the same deterministic seed the PRNG
// itself is built from.
func Hash64(x uint64) uint64 { return hash(x) }

// Rng is a small, splittable PRNG: a PCG32 generator seeded via
// SplitMix64. It is the only source of randomness the integrator and
// camera see, reached through Float64/Get1D/Get2D, never through
// math/rand, so that two renders seeded identically produce identical
// streams regardless of which package asks for a draw.
type Rng struct {
	state uint64
	inc   uint64
}

const pcgMultiplier = 6364136223846793005

// NewRng creates a PRNG stream from a 64-bit seed. The PCG32 stream
// selector (the odd increment) is fixed, so sequences differ only by
// seed; this renderer always derives seed from hash(pixel/sample
// index).
func NewRng(seed uint64) *Rng {
	r := &Rng{state: 0, inc: (1 << 1) | 1}
	r.step()
	r.state += hash(seed)
	r.step()
	return r
}

func (r *Rng) step() uint32 {
	old := r.state
	r.state = old*pcgMultiplier + r.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Float64 returns a pseudo-random value uniformly distributed in [0,1).
func (r *Rng) Float64() float64 {
	return float64(r.step()) / (1 << 32)
}

// Get1D is the single primitive the integrator and camera see: a draw
// uniform on [0,1).
func (r *Rng) Get1D() float64 { return r.Float64() }

// Get2D returns a pair of independent draws, used for disc/lens samples.
func (r *Rng) Get2D() Vec2 { return Vec2{X: r.Float64(), Y: r.Float64()} }

// RangeFloat64 returns a uniform draw in [lo, hi).
func (r *Rng) RangeFloat64(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// SeedFor returns the deterministic per-sample seed index
// (y*width+x)*sampleCount + s, unhashed; callers pass it through
// Hash64 to obtain the seed hash((y*width+x)*sampleCount + s).
func SeedFor(x, y, width, sampleCount, s int) uint64 {
	pixIdx := uint64(y)*uint64(width) + uint64(x)
	return pixIdx*uint64(sampleCount) + uint64(s)
}
