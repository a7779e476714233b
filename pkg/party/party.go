// Package party defines the opaque per-party state records the dealer
// produces and the evaluator functions in protocols/funshade and
// protocols/ass consume. There is no class hierarchy here: a party is
// just tagged correlated-randomness data plus whatever share buffers
// the caller is currently exchanging, matching the teacher corpus's
// preference for plain structs over behavior-bearing party objects.
package party

import (
	"fmt"

	"github.com/luxfi/funshade/pkg/dealer"
	"github.com/luxfi/funshade/pkg/ring"
)

// Role identifies which side of a comparison a party plays. The two
// roles are asymmetric only in which input vector they hold; the
// correlated randomness and message flow are otherwise identical.
type Role int

const (
	// DataHolder is the party supplying the vector to be compared
	// ("BP" in the original source).
	DataHolder Role = iota
	// TemplateHolder is the party supplying the comparison template
	// ("Gate" in the original source).
	TemplateHolder
)

func (r Role) index() int {
	if r == DataHolder {
		return 0
	}
	return 1
}

// State is one party's view of a single precomputed Beaver-variant
// comparison instance, plus whatever input vector and exchanged
// intermediate shares it is currently holding. Instance is the Beaver-
// variant dealer.Instance this party was handed.
type State[T ring.Elem] struct {
	Role     Role
	Instance dealer.Instance[T]
	Input    []T
}

// Index returns 0 for DataHolder, 1 for TemplateHolder — the party
// index the protocol/fss functions expect.
func (s State[T]) Index() int { return s.Role.index() }

// Validate checks the state's input vector matches the instance's
// Beaver triple count, the only precondition the library can check
// without seeing the peer's data.
func (s State[T]) Validate() error {
	if len(s.Input) != len(s.Instance.Triples) {
		return fmt.Errorf("party: input length %d does not match instance width %d: %w", len(s.Input), len(s.Instance.Triples), ring.ErrPreconditionViolation)
	}
	return nil
}

// StateSS is the additive-share-variant counterpart of State: Value now
// holds the party's own l-dimensional input vector (the vector it masks
// against the instance's A/B mask vectors via ass.ShareSS), matching
// State.Input rather than a bare scalar.
type StateSS[T ring.Elem] struct {
	Role     Role
	Instance dealer.InstanceSS[T]
	Value    []T
}

// Index returns 0 for DataHolder, 1 for TemplateHolder.
func (s StateSS[T]) Index() int { return s.Role.index() }

// Validate checks the state's input vector matches the instance's mask
// vector width.
func (s StateSS[T]) Validate() error {
	if len(s.Value) != len(s.Instance.A) {
		return fmt.Errorf("party: ss input length %d does not match instance width %d: %w", len(s.Value), len(s.Instance.A), ring.ErrPreconditionViolation)
	}
	return nil
}
