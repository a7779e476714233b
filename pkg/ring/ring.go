// Package ring implements the fixed-width signed integer ring R = Z/2^n
// that every funshade protocol value lives in, for n in {32, 64}.
//
// Elements are stored as unsigned Go integers so that addition,
// subtraction and multiplication wrap exactly the way R's modular
// arithmetic requires: Go's uint32/uint64 operators already wrap at
// 2^32/2^64, and reinterpreting the same bit pattern as a signed
// integer (two's complement) gives the ring's "signed interpretation"
// for free via a plain conversion.
package ring

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
)

// Sentinel errors for the library's error taxonomy (spec §7). The ring,
// dealer, party, fss key-generation and sign-gate, and protocol packages
// wrap one of these with fmt.Errorf("...: %w", ...) when they detect a
// failure of that class, so callers can distinguish failure classes with
// errors.Is instead of string matching. Key decoding (fss.UnpackKey,
// fss.UnmarshalBundle) and pkg/ceremony return wrapped errors that carry
// no sentinel.
var (
	// ErrPreconditionViolation marks a caller-supplied argument that
	// violates a documented precondition (out-of-range party index,
	// mismatched vector lengths, a provably overflowing dimension bound).
	ErrPreconditionViolation = errors.New("ring: precondition violation")
	// ErrRandomnessFailure marks a failed read from the caller-supplied
	// randomness source.
	ErrRandomnessFailure = errors.New("ring: randomness failure")
	// ErrCryptoFailure marks a failure inside the cryptographic
	// machinery itself (PRG, AES block cipher, HKDF) rather than in
	// caller input.
	ErrCryptoFailure = errors.New("ring: crypto failure")
)

// ValidateParty checks that j is a valid party index (0 or 1); every
// two-party evaluator function in this module takes such an index and
// must reject anything else rather than silently treating it as party
// 1, which `if j == 0 {...} else {...}` would otherwise do.
func ValidateParty(j int) error {
	if j != 0 && j != 1 {
		return fmt.Errorf("ring: party index %d: %w", j, ErrPreconditionViolation)
	}
	return nil
}

// Elem constrains the two concrete ring element types this package
// supports. n is fixed per instantiation: Elem32 is Z/2^32, Elem64 is
// Z/2^64.
type Elem interface {
	~uint32 | ~uint64
}

// Elem32 is an element of Z/2^32.
type Elem32 uint32

// Elem64 is an element of Z/2^64.
type Elem64 uint64

// Width returns n for a ring element type, computed generically so the
// rest of the library never special-cases 32 vs 64.
func Width[T Elem]() int {
	var z T
	switch any(z).(type) {
	case Elem32:
		return 32
	case Elem64:
		return 64
	default:
		panic(fmt.Sprintf("ring: unsupported element type %T", z))
	}
}

// Add, Sub, Mul, Neg are plain wraparound ring arithmetic. They are
// generic free functions (rather than methods) so callers can use the
// same code over []Elem32 and []Elem64 batches.
func Add[T Elem](a, b T) T { return a + b }
func Sub[T Elem](a, b T) T { return a - b }
func Mul[T Elem](a, b T) T { return a * b }
func Neg[T Elem](a T) T    { return -a }

// Bit returns bit i (0 = MSB) of v's two's-complement signed value,
// after the sign-bias transform that makes two's-complement ordering
// agree with unsigned ordering (flip the top bit, equivalent to adding
// 2^(n-1) mod 2^n). This is the representation the DCF bit-decomposes:
// without the bias, comparing raw two's-complement bit patterns MSB
// first would order negative numbers above positive ones.
func Bit[T Elem](v T, i int) int {
	n := Width[T]()
	biased := Bias(v)
	shift := n - 1 - i
	return int((biased >> uint(shift)) & 1)
}

// Bias flips the sign bit of v, mapping two's-complement order onto
// unsigned order. Bias is its own inverse.
func Bias[T Elem](v T) T {
	n := Width[T]()
	var top T = 1
	top <<= uint(n - 1)
	return v ^ top
}

// SignBit reports whether v is negative under the two's-complement
// interpretation (top bit set).
func SignBit[T Elem](v T) bool {
	n := Width[T]()
	var top T = 1
	top <<= uint(n - 1)
	return v&top != 0
}

// GreaterThan compares a and b as signed two's-complement integers.
func GreaterThan[T Elem](a, b T) bool {
	return Bias(a) > Bias(b)
}

// FromInt64 builds a ring element from a signed host integer, wrapping
// per the ring's width.
func FromInt64[T Elem](v int64) T {
	switch Width[T]() {
	case 32:
		return T(uint32(int32(v)))
	default:
		return T(uint64(v))
	}
}

// ToInt64 reinterprets v's bit pattern as a signed two's-complement
// integer widened to int64.
func ToInt64[T Elem](v T) int64 {
	switch Width[T]() {
	case 32:
		return int64(int32(uint32(v)))
	default:
		return int64(uint64(v))
	}
}

// Random draws a uniformly random ring element from a CSPRNG. Returns
// RandomnessFailure-wrapped errors on read failure per the library's
// error taxonomy.
func Random[T Elem](rnd interface {
	Read([]byte) (int, error)
}) (T, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	buf := make([]byte, Width[T]()/8)
	if _, err := rnd.Read(buf); err != nil {
		return T(0), fmt.Errorf("ring: random: %w: %w", ErrRandomnessFailure, err)
	}
	if Width[T]() == 32 {
		return T(binary.BigEndian.Uint32(buf)), nil
	}
	return T(binary.BigEndian.Uint64(buf)), nil
}

// RandomVector draws a length-m vector of uniformly random ring
// elements.
func RandomVector[T Elem](m int, rnd interface {
	Read([]byte) (int, error)
}) ([]T, error) {
	out := make([]T, m)
	for i := range out {
		v, err := Random[T](rnd)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Bytes serializes a ring element big-endian, Width[T]()/8 bytes.
func Bytes[T Elem](v T) []byte {
	n := Width[T]()
	buf := make([]byte, n/8)
	if n == 32 {
		binary.BigEndian.PutUint32(buf, uint32(v))
	} else {
		binary.BigEndian.PutUint64(buf, uint64(v))
	}
	return buf
}

// Parse is the inverse of Bytes.
func Parse[T Elem](buf []byte) (T, error) {
	n := Width[T]()
	if len(buf) != n/8 {
		return T(0), fmt.Errorf("ring: parse: expected %d bytes, got %d: %w", n/8, len(buf), ErrPreconditionViolation)
	}
	if n == 32 {
		return T(binary.BigEndian.Uint32(buf)), nil
	}
	return T(binary.BigEndian.Uint64(buf)), nil
}

// InnerProduct computes sum_i a[i]*b[i] in R. Overflow wraps silently
// per the ring's semantics; callers are responsible for the precondition
// in CheckOverflowBound.
func InnerProduct[T Elem](a, b []T) T {
	var acc T
	for i := range a {
		acc = Add(acc, Mul(a[i], b[i]))
	}
	return acc
}

// CheckOverflowBound proves, from declared bounds alone, that an
// l-dimensional inner product of values bounded by maxAbs cannot
// overflow R's signed range. It only ever looks at l and maxAbs, never
// at share or plaintext data.
//
// The inner product of two length-l vectors each bounded by maxAbs in
// absolute value is itself bounded by l*maxAbs^2, which must fit in
// R's signed range (l*maxAbs^2 < 2^(n-1)) or Add/Mul's wraparound
// silently corrupts the comparison. l*maxAbs^2 can overflow an int64
// before it overflows 2^(n-1) for n=64, hence saferith.Nat.
func CheckOverflowBound[T Elem](l int, maxAbs int64) error {
	if l < 0 {
		return fmt.Errorf("ring: overflow check: negative dimension l=%d: %w", l, ErrPreconditionViolation)
	}
	if maxAbs < 0 {
		return fmt.Errorf("ring: overflow check: negative bound maxAbs=%d: %w", maxAbs, ErrPreconditionViolation)
	}

	bound := new(saferith.Nat).SetUint64(uint64(maxAbs))
	bound.Mul(bound, bound, -1)
	bound.Mul(bound, new(saferith.Nat).SetUint64(uint64(l)), -1)

	limit := new(saferith.Nat).SetUint64(1)
	limit.Lsh(limit, uint(Width[T]()-1), -1)

	// saferith.Nat is built for constant-time modular arithmetic on
	// secret moduli, not for ordering public bounds, so the final
	// comparison goes through math/big rather than reaching for a
	// saferith ordering primitive that doesn't fit this use.
	if bound.Big().Cmp(limit.Big()) >= 0 {
		return fmt.Errorf("ring: overflow check: l=%d, max|x_i|=%d cannot fit in the %d-bit signed ring without overflow: %w", l, maxAbs, Width[T](), ErrPreconditionViolation)
	}
	return nil
}
