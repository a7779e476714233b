// Package prg implements the length-doubling pseudorandom generator the
// DCF construction recurses on: a fixed-key AES-128 block cipher used in
// Matyas-Meyer-Oseas (MMO) one-way mode, the standard way to turn a block
// cipher into a PRG without needing a secret key per call.
//
// The "fixed key" is a protocol-wide public constant, not a secret: its
// only job is to fix one AES permutation that every party agrees on.
// Deriving it from a versioned label via HKDF (rather than hardcoding raw
// bytes) means bumping the protocol version is a label change, not a
// binary patch.
package prg

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"sync"

	"golang.org/x/crypto/hkdf"
)

// Seed is a 128-bit DCF seed: the atomic unit the tree recursion forks.
type Seed [16]byte

// versionLabel is the public domain-separation label the fixed AES key is
// derived from. Bumping the protocol version means changing this string,
// not the binary.
const versionLabel = "funshade-dcf-prg-v1"

var (
	fixedKeyOnce sync.Once
	fixedBlock   cipher.Block
)

func fixedCipher() cipher.Block {
	fixedKeyOnce.Do(func() {
		kdf := hkdf.New(sha256.New, []byte(versionLabel), nil, []byte("funshade-fixed-key"))
		key := make([]byte, 16)
		if _, err := kdf.Read(key); err != nil {
			panic("prg: hkdf key derivation failed: " + err.Error())
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			panic("prg: aes.NewCipher: " + err.Error())
		}
		fixedBlock = block
	})
	return fixedBlock
}

// mmo computes the Matyas-Meyer-Oseas one-way compression of s under the
// fixed AES key: E_K(s) XOR s. Fixing K publicly and keeping s secret is
// what makes this a PRG rather than a PRF keyed per call.
func mmo(block cipher.Block, s Seed) [16]byte {
	var out [16]byte
	block.Encrypt(out[:], s[:])
	for i := range out {
		out[i] ^= s[i]
	}
	return out
}

// Expand doubles a seed into a left child seed, a right child seed, and
// two control bits (one per child), the four quantities the DCF/DPF tree
// recursion needs at every level. It evaluates MMO twice, over s and over
// s with its low bit flipped, following the standard length-doubling PRG
// construction used by DPF/DCF implementations (see pkg/fss).
func Expand(s Seed) (left, right Seed, tLeft, tRight int) {
	block := fixedCipher()

	out0 := mmo(block, s)
	var s1 Seed = s
	s1[15] ^= 1
	out1 := mmo(block, s1)

	copy(left[:], out0[:16])
	copy(right[:], out1[:16])

	tLeft = int(out0[15] & 1)
	tRight = int(out1[15] & 1)

	left[15] &^= 1
	right[15] &^= 1

	return left, right, tLeft, tRight
}

// Convert expands a seed into a pseudorandom ring value used for the DCF
// leaf's value correction. It runs MMO a third time, over s with its
// second-lowest bit flipped, to decorrelate the value stream from the
// left/right child seed stream produced by Expand.
func Convert(s Seed) [16]byte {
	block := fixedCipher()
	var s2 Seed = s
	s2[15] ^= 2
	return mmo(block, s2)
}

// XorSeed XORs two seeds, used to apply correction words during tree
// recursion.
func XorSeed(a, b Seed) Seed {
	var out Seed
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}
