package ptr

import (
	"fmt"

	"github.com/grailbio/base/errors"

	"github.com/grailbio/bpatch/rng"
)

// Pointer is an immutable patch component whose encoded value is the
// address at which its Referent patch was placed. Address = Offset +
// Stride*v, where v is the size-byte, possibly-signed integer read out of
// the Pointer's own bytes; Align further restricts addresses to a
// multiple of |Stride|*Align.
type Pointer struct {
	Referent  string
	Offset    int
	Size      int
	Align     int
	Stride    int
	Signed    bool
	BigEndian bool

	gamut rng.Range
}

// New validates its arguments and precomputes the Pointer's gamut.
func New(referent string, offset, size, align, stride int, signed, bigendian bool) (Pointer, error) {
	if referent == "" {
		return Pointer{}, errors.New("pointer referent must not be empty")
	}
	if size < 0 {
		return Pointer{}, errors.E(fmt.Sprintf("size cannot be negative: %d", size))
	}
	if align < 1 || align&(align-1) != 0 {
		return Pointer{}, errors.E(fmt.Sprintf("align must be a power of two: %d", align))
	}
	if stride == 0 {
		return Pointer{}, errors.New("stride must not be zero")
	}
	p := Pointer{
		Referent:  referent,
		Offset:    offset,
		Size:      size,
		Align:     align,
		Stride:    stride,
		Signed:    signed,
		BigEndian: bigendian,
	}
	p.gamut = computeGamut(offset, size, align, stride, signed)
	return p, nil
}

func bounds(size int, signed bool) (lo, hi int) {
	if size == 0 {
		return 0, 0
	}
	bits := uint(size * 8)
	if signed {
		return -(1 << (bits - 1)), (1 << (bits - 1)) - 1
	}
	return 0, (1 << bits) - 1
}

func computeGamut(offset, size, align, stride int, signed bool) rng.Range {
	lo, hi := bounds(size, signed)
	step := stride
	if step < 0 {
		step = -step
	}
	step *= align
	var start, stop int
	if stride > 0 {
		start = offset + stride*lo
		stop = offset + stride*hi + 1
	} else {
		start = offset + stride*hi
		stop = offset + stride*lo + 1
	}
	if stop <= start {
		return rng.Empty()
	}
	return rng.New(start, stop, step)
}

// Gamut is the arithmetic progression of addresses this Pointer can
// legally encode.
func (p Pointer) Gamut() rng.Range {
	return p.gamut
}

// Len is the number of bytes this Pointer writes.
func (p Pointer) Len() int {
	return p.Size
}

func (p Pointer) shifts() []uint {
	s := make([]uint, p.Size)
	for i := range s {
		if p.BigEndian {
			s[i] = uint(8 * (p.Size - 1 - i))
		} else {
			s[i] = uint(8 * i)
		}
	}
	return s
}

// Encode computes the bytes this Pointer writes when its referent sits at
// address. address must lie in the Pointer's gamut (both within bounds
// and on the correct residue class), else Encode returns an error.
func (p Pointer) Encode(address int) ([]byte, error) {
	if !p.gamut.Contains(address) {
		if p.Size > 0 && (address < p.gamut.Start() || address >= p.gamut.Stop()) {
			return nil, errors.E(fmt.Sprintf("address %d out of bounds for pointer to %q (gamut %v)", address, p.Referent, p.gamut))
		}
		return nil, errors.E(fmt.Sprintf("address %d improperly aligned for pointer to %q (gamut %v)", address, p.Referent, p.gamut))
	}
	if p.Size == 0 {
		return nil, nil
	}
	v := (address - p.Offset) / p.Stride
	bits := uint(p.Size * 8)
	uv := uint64(v) & (mask64(bits))
	out := make([]byte, p.Size)
	for i, shift := range p.shifts() {
		out[i] = byte((uv >> shift) & 0xff)
	}
	return out, nil
}

// Decode is the inverse of Encode: given the bytes written for this
// Pointer, recover the address it names. Used by round-trip tests; not
// needed by the fitting pipeline itself.
func (p Pointer) Decode(data []byte) (int, error) {
	if len(data) != p.Size {
		return 0, errors.E(fmt.Sprintf("expected %d bytes, got %d", p.Size, len(data)))
	}
	if p.Size == 0 {
		return p.Offset, nil
	}
	var uv uint64
	for i, shift := range p.shifts() {
		uv |= uint64(data[i]) << shift
	}
	bits := uint(p.Size * 8)
	v := int64(uv)
	if p.Signed && bits < 64 && uv&(1<<(bits-1)) != 0 {
		v -= int64(1) << bits
	}
	return p.Offset + p.Stride*int(v), nil
}

func mask64(bits uint) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}

// Data implements patch.Component for use as a patch component: it encodes
// the address assigned to the referent in fitMap.
func (p Pointer) Data(fitMap map[string]int) ([]byte, error) {
	address, ok := fitMap[p.Referent]
	if !ok {
		return nil, errors.E(fmt.Sprintf("no placement for referent %q", p.Referent))
	}
	return p.Encode(address)
}

// Constrain implements patch.Component: it intersects the referent's
// running gamut with this Pointer's own gamut, and enqueues the referent
// for processing if it hasn't been visited yet.
func (p Pointer) Constrain(gamuts map[string]rng.Range, processed map[string]bool, toProcess *[]string) {
	cur, ok := gamuts[p.Referent]
	if !ok {
		cur = rng.Unbounded()
	}
	gamuts[p.Referent] = cur.Intersect(p.gamut)
	if !processed[p.Referent] {
		*toProcess = append(*toProcess, p.Referent)
	}
}
