package types

// Visibility orders type/function exposure: Private < Module < Public.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityModule
	VisibilityPublic
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityModule:
		return "module"
	case VisibilityPublic:
		return "public"
	default:
		return "unknown"
	}
}

// AtLeast reports whether v satisfies a required visibility level, i.e.
// signature.is_visible(required) from spec.md §3.
func (v Visibility) AtLeast(required Visibility) bool {
	return v >= required
}
