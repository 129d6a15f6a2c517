package voltjson

import (
	"errors"
	"fmt"
)

// Kind classifies why a read or write failed.
type Kind uint8

const (
	// KindNone means no failure was recorded.
	KindNone Kind = iota
	// KindMalformed is a wrong token kind or an invalid literal.
	KindMalformed
	// KindTruncated means the input ended where a value was expected.
	KindTruncated
	// KindStructure is a separator or element ordering violation.
	KindStructure
	// KindReadDisabled means a property the schema forbids on input was present.
	KindReadDisabled
	// KindUnresolvedDependency means a deferred property could not be resolved.
	KindUnresolvedDependency
	// KindTrailingData means bytes remained after the top-level value.
	KindTrailingData
	// KindUnwritable means a value has no JSON representation.
	KindUnwritable
)

var (
	ErrMalformed            = errors.New("voltjson: malformed input")
	ErrTruncated            = errors.New("voltjson: unexpected end of input")
	ErrStructure            = errors.New("voltjson: invalid separator placement")
	ErrReadDisabled         = errors.New("voltjson: property is not readable")
	ErrUnresolvedDependency = errors.New("voltjson: unresolved property dependency")
	ErrTrailingData         = errors.New("voltjson: trailing data after value")
	ErrUnwritable           = errors.New("voltjson: value cannot be written")
)

var kindErrors = [...]error{
	KindMalformed:            ErrMalformed,
	KindTruncated:            ErrTruncated,
	KindStructure:            ErrStructure,
	KindReadDisabled:         ErrReadDisabled,
	KindUnresolvedDependency: ErrUnresolvedDependency,
	KindTrailingData:         ErrTrailingData,
	KindUnwritable:           ErrUnwritable,
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMalformed:
		return "malformed"
	case KindTruncated:
		return "truncated"
	case KindStructure:
		return "structure"
	case KindReadDisabled:
		return "read-disabled"
	case KindUnresolvedDependency:
		return "unresolved-dependency"
	case KindTrailingData:
		return "trailing-data"
	case KindUnwritable:
		return "unwritable"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// SyntaxError reports a failed read or write. It unwraps to the sentinel
// matching its Kind, so errors.Is(err, ErrTruncated) works.
type SyntaxError struct {
	Kind Kind
	// Offset is the input offset of the first failure, or -1 for writes.
	Offset int
	// Type names the Go type being read or written.
	Type string
}

func (e *SyntaxError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("voltjson: %s: cannot write %s", e.Kind, e.Type)
	}
	return fmt.Sprintf("voltjson: %s at offset %d reading %s", e.Kind, e.Offset, e.Type)
}

func (e *SyntaxError) Unwrap() error {
	if int(e.Kind) < len(kindErrors) {
		return kindErrors[e.Kind]
	}
	return nil
}

// Schema and registry errors.
var (
	ErrDuplicateProperty   = errors.New("voltjson: duplicate property key")
	ErrUnknownDependency   = errors.New("voltjson: dependency names an unknown property")
	ErrSelfDependency      = errors.New("voltjson: property depends on itself")
	ErrDependencyChain     = errors.New("voltjson: dependency target has a dependency of its own")
	ErrTooManyDependencies = errors.New("voltjson: too many dependency slots")

	ErrNotRegistered     = errors.New("voltjson: type not registered")
	ErrAlreadyRegistered = errors.New("voltjson: type already registered")
	ErrRegistryFrozen    = errors.New("voltjson: registry is frozen")
)
