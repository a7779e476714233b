// This file implements the frozen wire layout for a single party's FSS
// key (spec §9's ABI note), adapted for this package's two-value-per-level
// correction words. A packed key is 1+2+16 header bytes followed by n
// correction words of 16+1+1+2*(n/8) bytes each: each control bit takes a
// whole byte, every level carries two value corrections (Left/Right), the
// initial control bit is not stored (it equals the party index), and there
// is no final output correction. Field order is fixed; changing it is a
// wire-format break.
package fss

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/luxfi/funshade/pkg/prg"
	"github.com/luxfi/funshade/pkg/ring"
)

// Pack serializes a key to the frozen wire layout: 1 byte party tag,
// 2 bytes bit-width, 16 bytes initial seed, then N correction words of
// (16 + 1 + 1 + n/8 + n/8) bytes each.
func (k *Key[T]) Pack() []byte {
	n := k.N
	elemBytes := n / 8
	cwSize := 16 + 1 + 1 + elemBytes + elemBytes

	buf := make([]byte, 0, 1+2+16+len(k.CW)*cwSize)
	buf = append(buf, byte(k.Party))
	buf = binary.BigEndian.AppendUint16(buf, uint16(n))
	buf = append(buf, k.S0[:]...)

	for _, cw := range k.CW {
		buf = append(buf, cw.SCW[:]...)
		buf = append(buf, byte(cw.TCWLeft))
		buf = append(buf, byte(cw.TCWRight))
		buf = append(buf, ring.Bytes(cw.VCWLeft)...)
		buf = append(buf, ring.Bytes(cw.VCWRight)...)
	}
	return buf
}

// UnpackKey is the inverse of (*Key).Pack.
func UnpackKey[T ring.Elem](buf []byte) (*Key[T], error) {
	r := bytes.NewReader(buf)

	var partyByte, tL, tR byte
	if err := binary.Read(r, binary.BigEndian, &partyByte); err != nil {
		return nil, fmt.Errorf("fss: UnpackKey: %w", err)
	}
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, fmt.Errorf("fss: UnpackKey: %w", err)
	}
	if int(n) != ring.Width[T]() {
		return nil, fmt.Errorf("fss: UnpackKey: width mismatch: wire has %d, type wants %d", n, ring.Width[T]())
	}

	var s0 prg.Seed
	if _, err := r.Read(s0[:]); err != nil {
		return nil, fmt.Errorf("fss: UnpackKey: %w", err)
	}

	elemBytes := int(n) / 8
	cw := make([]CorrectionWord[T], n)
	for i := range cw {
		var scw prg.Seed
		if _, err := r.Read(scw[:]); err != nil {
			return nil, fmt.Errorf("fss: UnpackKey: level %d: %w", i, err)
		}
		if err := binary.Read(r, binary.BigEndian, &tL); err != nil {
			return nil, fmt.Errorf("fss: UnpackKey: level %d: %w", i, err)
		}
		if err := binary.Read(r, binary.BigEndian, &tR); err != nil {
			return nil, fmt.Errorf("fss: UnpackKey: level %d: %w", i, err)
		}
		vl := make([]byte, elemBytes)
		if _, err := r.Read(vl); err != nil {
			return nil, fmt.Errorf("fss: UnpackKey: level %d: %w", i, err)
		}
		vr := make([]byte, elemBytes)
		if _, err := r.Read(vr); err != nil {
			return nil, fmt.Errorf("fss: UnpackKey: level %d: %w", i, err)
		}
		vcwL, err := ring.Parse[T](vl)
		if err != nil {
			return nil, fmt.Errorf("fss: UnpackKey: level %d: %w", i, err)
		}
		vcwR, err := ring.Parse[T](vr)
		if err != nil {
			return nil, fmt.Errorf("fss: UnpackKey: level %d: %w", i, err)
		}
		cw[i] = CorrectionWord[T]{SCW: scw, TCWLeft: int(tL), TCWRight: int(tR), VCWLeft: vcwL, VCWRight: vcwR}
	}

	return &Key[T]{Party: int(partyByte), N: int(n), S0: s0, CW: cw}, nil
}

// Bundle is a CBOR-encodable envelope bundling both parties' keys for a
// batch of sign gates, used by the CLI and test fixtures to round-trip a
// whole dealer ceremony's output in one file. This is never the wire
// format the per-key ABI above freezes — it is a debugging convenience
// on top of it.
type Bundle[T ring.Elem] struct {
	N     int      `cbor:"n"`
	Theta T        `cbor:"theta"`
	Keys0 [][]byte `cbor:"keys0"`
	Keys1 [][]byte `cbor:"keys1"`
}

// NewBundle packs a set of sign gates into a CBOR-ready Bundle.
func NewBundle[T ring.Elem](theta T, gates []Gate[T]) Bundle[T] {
	b := Bundle[T]{N: ring.Width[T](), Theta: theta, Keys0: make([][]byte, len(gates)), Keys1: make([][]byte, len(gates))}
	for i, g := range gates {
		b.Keys0[i] = g.Key0.Pack()
		b.Keys1[i] = g.Key1.Pack()
	}
	return b
}

// Marshal CBOR-encodes the bundle.
func (b Bundle[T]) Marshal() ([]byte, error) {
	out, err := cbor.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("fss: Bundle.Marshal: %w", err)
	}
	return out, nil
}

// UnmarshalBundle decodes a CBOR-encoded Bundle and unpacks its keys.
func UnmarshalBundle[T ring.Elem](buf []byte) (theta T, gates []Gate[T], err error) {
	var b Bundle[T]
	if err := cbor.Unmarshal(buf, &b); err != nil {
		return theta, nil, fmt.Errorf("fss: UnmarshalBundle: %w", err)
	}
	if b.N != ring.Width[T]() {
		return theta, nil, fmt.Errorf("fss: UnmarshalBundle: width mismatch: bundle has %d, type wants %d", b.N, ring.Width[T]())
	}
	gates = make([]Gate[T], len(b.Keys0))
	for i := range b.Keys0 {
		k0, err := UnpackKey[T](b.Keys0[i])
		if err != nil {
			return theta, nil, fmt.Errorf("fss: UnmarshalBundle: gate %d: %w", i, err)
		}
		k1, err := UnpackKey[T](b.Keys1[i])
		if err != nil {
			return theta, nil, fmt.Errorf("fss: UnmarshalBundle: gate %d: %w", i, err)
		}
		gates[i] = Gate[T]{Key0: k0, Key1: k1}
	}
	return b.Theta, gates, nil
}
