package main

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/hkdf"

	"github.com/luxfi/funshade/pkg/ceremony"
	"github.com/luxfi/funshade/pkg/dealer"
	"github.com/luxfi/funshade/pkg/fss"
	"github.com/luxfi/funshade/pkg/ring"
)

func runSetup(cmd *cobra.Command, args []string) error {
	switch widthFlag {
	case 32:
		return setupWidth[ring.Elem32](ring.Elem32(thetaFlag))
	case 64:
		return setupWidth[ring.Elem64](ring.Elem64(thetaFlag))
	default:
		return fmt.Errorf("funshade-cli: unsupported width %d (want 32 or 64)", widthFlag)
	}
}

// commitRecord is the CBOR-encoded transcript this command writes
// alongside the key bundle: the published commitment (point, seed,
// blind) plus the transcript hash of the bundle it produced, so a
// later run can reproduce the same ceremony from the same seed and
// confirm the dealer didn't substitute different randomness.
type commitRecord struct {
	Point      []byte `cbor:"point"`
	Seed       []byte `cbor:"seed"`
	Blind      []byte `cbor:"blind"`
	Transcript []byte `cbor:"transcript"`
}

func commitFile() string { return outFile + ".commit" }

// ceremonyReader derives a deterministic randomness stream from the
// committed seed via HKDF, so the whole dealer ceremony is reproducible
// from (and bound to) the published commitment rather than an opaque
// call to crypto/rand.
func ceremonyReader(seed [32]byte) io.Reader {
	return hkdf.New(sha256.New, seed[:], nil, []byte("funshade-cli-ceremony-v1"))
}

// pointFromRecord reconstructs an affine-represented JacobianPoint from
// a 64-byte X||Y encoding, the inverse of how setupWidth serializes
// commitment.Point for the commit file.
func pointFromRecord(buf []byte) (*secp256k1.JacobianPoint, error) {
	if len(buf) != 64 {
		return nil, fmt.Errorf("funshade-cli: pointFromRecord: expected 64 bytes, got %d", len(buf))
	}
	var x, y secp256k1.FieldVal
	x.SetByteSlice(buf[:32])
	y.SetByteSlice(buf[32:])
	var p secp256k1.JacobianPoint
	p.X, p.Y = x, y
	p.Z.SetInt(1)
	return &p, nil
}

func setupWidth[T ring.Elem](theta T) error {
	if err := ring.CheckOverflowBound[T](lDim, maxElFlag); err != nil {
		return fmt.Errorf("funshade-cli: setup: %w", err)
	}

	commitment, err := ceremony.Commit(rand.Reader)
	if err != nil {
		return fmt.Errorf("funshade-cli: setup: %w", err)
	}
	fmt.Printf("published commitment: %x\n", commitment.Point.X.Bytes()[:])

	rnd := ceremonyReader(commitment.Seed)
	p0, p1, err := dealer.Setup[T](kInstances, lDim, theta, rnd)
	if err != nil {
		return fmt.Errorf("funshade-cli: setup: %w", err)
	}

	gates := make([]fss.Gate[T], kInstances)
	for i := 0; i < kInstances; i++ {
		gates[i] = fss.Gate[T]{Key0: p0.Instances[i].Gate, Key1: p1.Instances[i].Gate}
	}

	bundle := fss.NewBundle(theta, gates)
	out, err := bundle.Marshal()
	if err != nil {
		return fmt.Errorf("funshade-cli: setup: %w", err)
	}

	if err := os.WriteFile(outFile, out, 0o600); err != nil {
		return fmt.Errorf("funshade-cli: setup: %w", err)
	}

	transcript := ceremony.TranscriptHash(out)
	record := commitRecord{
		Point:      append(commitment.Point.X.Bytes()[:], commitment.Point.Y.Bytes()[:]...),
		Seed:       commitment.Seed[:],
		Blind:      commitment.Blind[:],
		Transcript: transcript[:],
	}
	recordBytes, err := cbor.Marshal(record)
	if err != nil {
		return fmt.Errorf("funshade-cli: setup: %w", err)
	}
	if err := os.WriteFile(commitFile(), recordBytes, 0o600); err != nil {
		return fmt.Errorf("funshade-cli: setup: %w", err)
	}

	fmt.Printf("dealer ceremony complete: K=%d l=%d width=%d\n", kInstances, lDim, widthFlag)
	fmt.Printf("wrote %s (%d bytes, both parties' sign-gate keys for %d instances)\n", outFile, len(out), kInstances)
	fmt.Printf("wrote %s (reveals seed/blind for commitment replay)\n", commitFile())
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	switch widthFlag {
	case 32:
		return verifyWidth[ring.Elem32](ring.Elem32(thetaFlag))
	case 64:
		return verifyWidth[ring.Elem64](ring.Elem64(thetaFlag))
	default:
		return fmt.Errorf("funshade-cli: unsupported width %d (want 32 or 64)", widthFlag)
	}
}

// verifyWidth replays a prior ceremony from its published commitment:
// it recomputes the Pedersen commitment from the revealed seed/blind,
// re-derives the same randomness stream, re-runs the dealer ceremony,
// and checks the resulting bundle hashes to the recorded transcript.
func verifyWidth[T ring.Elem](theta T) error {
	recordBytes, err := os.ReadFile(commitFile())
	if err != nil {
		return fmt.Errorf("funshade-cli: verify: %w", err)
	}
	var record commitRecord
	if err := cbor.Unmarshal(recordBytes, &record); err != nil {
		return fmt.Errorf("funshade-cli: verify: %w", err)
	}

	var seed, blind [32]byte
	copy(seed[:], record.Seed)
	copy(blind[:], record.Blind)

	point, err := pointFromRecord(record.Point)
	if err != nil {
		return fmt.Errorf("funshade-cli: verify: %w", err)
	}
	commitment := &ceremony.Commitment{Point: point, Seed: seed, Blind: blind}
	if !ceremony.Verify(commitment) {
		return fmt.Errorf("funshade-cli: verify: commitment does not match revealed seed/blind")
	}

	rnd := ceremonyReader(seed)
	p0, p1, err := dealer.Setup[T](kInstances, lDim, theta, rnd)
	if err != nil {
		return fmt.Errorf("funshade-cli: verify: %w", err)
	}
	gates := make([]fss.Gate[T], kInstances)
	for i := 0; i < kInstances; i++ {
		gates[i] = fss.Gate[T]{Key0: p0.Instances[i].Gate, Key1: p1.Instances[i].Gate}
	}
	bundle := fss.NewBundle(theta, gates)
	out, err := bundle.Marshal()
	if err != nil {
		return fmt.Errorf("funshade-cli: verify: %w", err)
	}

	transcript := ceremony.TranscriptHash(out)
	var wantTranscript [32]byte
	copy(wantTranscript[:], record.Transcript)
	if transcript != wantTranscript {
		return fmt.Errorf("funshade-cli: verify: replayed ceremony does not match recorded transcript")
	}

	fmt.Println("commitment verified: replayed ceremony matches the recorded transcript")
	return nil
}
