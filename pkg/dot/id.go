package dot

import (
	"errors"
	"fmt"
)

// ErrInvalidID is matched by every [*IDError] through [errors.Is].
var ErrInvalidID = errors.New("invalid DOT identifier")

// IDErrorKind tells which identifier rule a name broke.
type IDErrorKind int

const (
	// EmptyName reports an empty name.
	EmptyName IDErrorKind = iota + 1
	// InvalidStartChar reports a first character that is neither an ASCII
	// letter nor an underscore.
	InvalidStartChar
	// InvalidChar reports a later character that is not ASCII alphanumeric
	// or an underscore.
	InvalidChar
)

func (k IDErrorKind) String() string {
	switch k {
	case EmptyName:
		return "EmptyName"
	case InvalidStartChar:
		return "InvalidStartChar"
	case InvalidChar:
		return "InvalidChar"
	default:
		return fmt.Sprintf("IDErrorKind(%d)", int(k))
	}
}

// IDError is returned by [NewID] when a name is not a bare-word identifier.
// Char holds the offending character; it is zero for [EmptyName].
type IDError struct {
	Kind IDErrorKind
	Char rune
}

func (e *IDError) Error() string {
	switch e.Kind {
	case EmptyName:
		return "dot: id cannot be empty"
	case InvalidStartChar:
		return fmt.Sprintf("dot: id cannot begin with %q", e.Char)
	default:
		return fmt.Sprintf("dot: id cannot contain %q", e.Char)
	}
}

// Unwrap returns [ErrInvalidID].
func (e *IDError) Unwrap() error { return ErrInvalidID }

// ID is a validated DOT identifier. The zero ID is not a valid identifier;
// the capability interfaces use it to mean "no identifier" (anonymous
// subgraphs, edges without ports).
type ID struct {
	name string
}

// NewID validates name against [A-Za-z_][A-Za-z0-9_]* and wraps it.
// The name is never normalized: an invalid name is rejected with an
// [*IDError], not fixed.
//
// This grammar is a strict subset of the DOT ID production; quoted and
// numeral identifiers are not accepted.
func NewID(name string) (ID, error) {
	if name == "" {
		return ID{}, &IDError{Kind: EmptyName}
	}
	for i, c := range name {
		if i == 0 {
			if !isIDStart(c) {
				return ID{}, &IDError{Kind: InvalidStartChar, Char: c}
			}
			continue
		}
		if !isIDStart(c) && !(c >= '0' && c <= '9') {
			return ID{}, &IDError{Kind: InvalidChar, Char: c}
		}
	}
	return ID{name: name}, nil
}

// MustID is like [NewID] but panics if name is invalid. It is meant for
// identifiers spelled out in source code.
func MustID(name string) ID {
	id, err := NewID(name)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the identifier text exactly as it was given to [NewID].
func (id ID) String() string { return id.name }

// IsZero reports whether id is the zero ID.
func (id ID) IsZero() bool { return id.name == "" }

func isIDStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
