package sim

import "math/bits"

// MT19937 parameters.
const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// MersenneTwister is an MT19937 generator. Integer seeds go through
// init_by_array on the 32-bit words of |seed|, and bounded integers use
// rejection sampling over the top k bits. Seed 42 therefore yields the same
// orders as the reference runs.
type MersenneTwister struct {
	mt  [mtN]uint32
	mti int
}

// NewMersenneTwister returns a generator seeded with seed.
func NewMersenneTwister(seed int64) *MersenneTwister {
	r := &MersenneTwister{}
	r.Seed(seed)
	return r
}

// Seed resets the state. Negative seeds behave like their absolute value.
func (r *MersenneTwister) Seed(seed int64) {
	mag := uint64(seed)
	if seed < 0 {
		mag = uint64(-seed) // MinInt64 wraps to 1<<63, its true magnitude
	}
	key := []uint32{uint32(mag)}
	if hi := uint32(mag >> 32); hi != 0 {
		key = append(key, hi)
	}
	r.initByArray(key)
}

func (r *MersenneTwister) initGenrand(s uint32) {
	r.mt[0] = s
	for i := 1; i < mtN; i++ {
		r.mt[i] = 1812433253*(r.mt[i-1]^(r.mt[i-1]>>30)) + uint32(i)
	}
	r.mti = mtN
}

func (r *MersenneTwister) initByArray(key []uint32) {
	r.initGenrand(19650218)
	i, j := 1, 0
	k := max(mtN, len(key))
	for ; k > 0; k-- {
		r.mt[i] = (r.mt[i] ^ ((r.mt[i-1] ^ (r.mt[i-1] >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			r.mt[0] = r.mt[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		r.mt[i] = (r.mt[i] ^ ((r.mt[i-1] ^ (r.mt[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			r.mt[0] = r.mt[mtN-1]
			i = 1
		}
	}
	r.mt[0] = 0x80000000
}

func (r *MersenneTwister) twist() {
	mag01 := [2]uint32{0, mtMatrixA}
	kk := 0
	for ; kk < mtN-mtM; kk++ {
		y := (r.mt[kk] & mtUpperMask) | (r.mt[kk+1] & mtLowerMask)
		r.mt[kk] = r.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
	}
	for ; kk < mtN-1; kk++ {
		y := (r.mt[kk] & mtUpperMask) | (r.mt[kk+1] & mtLowerMask)
		r.mt[kk] = r.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
	}
	y := (r.mt[mtN-1] & mtUpperMask) | (r.mt[0] & mtLowerMask)
	r.mt[mtN-1] = r.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
	r.mti = 0
}

// Uint32 returns the next tempered 32-bit output.
func (r *MersenneTwister) Uint32() uint32 {
	if r.mti >= mtN {
		r.twist()
	}
	y := r.mt[r.mti]
	r.mti++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Bits returns k random bits, 0 < k <= 64. Words are filled least
// significant first, as getrandbits does.
func (r *MersenneTwister) Bits(k int) uint64 {
	if k <= 32 {
		return uint64(r.Uint32() >> (32 - k))
	}
	lo := uint64(r.Uint32())
	hi := uint64(r.Uint32() >> (64 - k))
	return hi<<32 | lo
}

// Float64 returns a float in [0, 1) with 53 bits of precision.
func (r *MersenneTwister) Float64() float64 {
	a := r.Uint32() >> 5
	b := r.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// IntN returns a uniform int in [0, n) by rejection over bit_length(n) bits.
func (r *MersenneTwister) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	k := bits.Len64(uint64(n))
	v := r.Bits(k)
	for v >= uint64(n) {
		v = r.Bits(k)
	}
	return int(v)
}

// IntRange returns a uniform int in [lo, hi], both inclusive.
func (r *MersenneTwister) IntRange(lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
