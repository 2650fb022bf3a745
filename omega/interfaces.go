package omega

import "context"

// Transport is the broadcast medium boundary. OMEGA mandates no wire format
// beyond "one Vector per transmitted unit"; implementations that cross a
// process boundary serialize vectors themselves (see Vector.MarshalBinary
// for the 40-byte little-endian encoding).
//
// The reference transport is an in-memory LIFO buffer. Real deployments
// substitute an actual broadcast medium (the relay packages provide an HTTP
// one) without touching the pipeline logic.
type Transport interface {
	// Send hands one vector to the broadcast medium.
	Send(ctx context.Context, v Vector) error

	// Poll retrieves one vector if any is pending. The second return value
	// reports whether a vector was available; an empty medium is not an
	// error.
	Poll(ctx context.Context) (Vector, bool, error)
}

// Operator is the shared capability of the six pipeline operators. The set of
// implementers is closed: operators are concrete types in the operators
// package, not an open plugin surface. Each operator additionally exposes its
// own typed apply method; this interface only carries the composition
// metadata.
type Operator interface {
	// Name identifies the operator in logs and diagnostics.
	Name() string

	// LipschitzBound is the operator's declared Lipschitz constant. Every
	// operator except DoubleKick is non-expansive (bound 1.0); DoubleKick's
	// bound exceeds 1.0 by the sum of its impulse magnitudes.
	LipschitzBound() float64
}
