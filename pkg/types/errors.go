package types

// ErrKind classifies kernel errors so callers can branch on intent rather
// than matching error text.
type ErrKind int

const (
	ErrKindNotFound ErrKind = iota
	ErrKindType
	ErrKindConflict
	ErrKindUnsupported
	ErrKindState
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not-found"
	case ErrKindType:
		return "type-mismatch"
	case ErrKindConflict:
		return "conflict"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindState:
		return "invalid-state"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause, used for every
// soft failure the kernel reports (as opposed to the panics spec.md
// reserves for programmer/host contract violations).
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels returned by Registry/Object/Managed accessors.
var (
	ErrTypeNotFound     = &Error{Kind: ErrKindNotFound, Msg: "types: type not found"}
	ErrFunctionNotFound = &Error{Kind: ErrKindNotFound, Msg: "types: function not found"}
	ErrFieldNotFound    = &Error{Kind: ErrKindNotFound, Msg: "types: field not found"}
	ErrVariantNotFound  = &Error{Kind: ErrKindNotFound, Msg: "types: enum variant not found"}
	ErrTypeMismatch     = &Error{Kind: ErrKindType, Msg: "types: value has different type"}
	ErrCannotInitialize = &Error{Kind: ErrKindUnsupported, Msg: "types: type declares no initializer"}
	ErrDuplicateField   = &Error{Kind: ErrKindConflict, Msg: "types: duplicate field name"}
)
