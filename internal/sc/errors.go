package sc

import "fmt"

// ErrorKind enumerates the error taxonomy surfaced to callers of AddAtom and
// Calc. Every other degeneracy a geometric construction can hit (a negative
// far/containment discriminant, a zero wedge angle, a non-positive local
// frame) is benign and silently skips that group rather than raising one of
// these.
type ErrorKind int

const (
	// KindNoAtoms: Calc invoked with no atoms loaded.
	KindNoAtoms ErrorKind = iota
	// KindMissingRadius: an atom matched no radius-table row and carries no
	// usable atom-type radius.
	KindMissingRadius
	// KindCoincident: two same-molecule atoms occupy (within 0.01 Å) the
	// same position.
	KindCoincident
	// KindImagFar: the far-term discriminant of a contact construction was
	// non-positive. Nothing in this package raises it: Calc treats this
	// case as a benign skip.
	KindImagFar
	// KindImagContain: the containment-term discriminant of a contact
	// construction was non-positive. Same caveat as KindImagFar.
	KindImagContain
	// KindNonPositiveFrame: the local contact frame's orientation check
	// failed. Same caveat as KindImagFar.
	KindNonPositiveFrame
	// KindTooManySubdivisions: an arc/circle sampler exceeded its hard
	// subdivision cap, which usually means an unrealistic density setting.
	KindTooManySubdivisions
	// KindIoError: the radius table failed to load or parse.
	KindIoError
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoAtoms:
		return "NoAtoms"
	case KindMissingRadius:
		return "MissingRadius"
	case KindCoincident:
		return "Coincident"
	case KindImagFar:
		return "ImagFar"
	case KindImagContain:
		return "ImagContain"
	case KindNonPositiveFrame:
		return "NonPositiveFrame"
	case KindTooManySubdivisions:
		return "TooManySubdivisions"
	case KindIoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type Calc and AddAtom return. AtomA/AtomB carry
// the natom identities involved, when the Kind names a pair (0 when unused).
type Error struct {
	Kind  ErrorKind
	Msg   string
	AtomA int
	AtomB int
	Err   error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("sc: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("sc: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, &Error{Kind: K}) match any *Error of that Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func errNoAtoms() error {
	return &Error{Kind: KindNoAtoms, Msg: "calc invoked with no atoms loaded"}
}

func errMissingRadius(residue, atom string) error {
	return &Error{Kind: KindMissingRadius, Msg: fmt.Sprintf("no radius for %s:%s", residue, atom)}
}

func errCoincident(natomA, natomB int, msg string) error {
	return &Error{Kind: KindCoincident, Msg: msg, AtomA: natomA, AtomB: natomB}
}

func errTooManySubdivisions() error {
	return &Error{Kind: KindTooManySubdivisions, Msg: "arc sampler exceeded subdivision cap"}
}

func errIO(msg string, cause error) error {
	return &Error{Kind: KindIoError, Msg: msg, Err: cause}
}
