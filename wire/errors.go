package wire

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
// Error() strings are human-readable and may evolve.
type Kind string

const (
	// KindDecode covers structurally malformed input: bad tags, truncated
	// length prefixes, wrong wire types.
	KindDecode Kind = "Decode"
	// KindEmptyPacket means the union carried no variant at all.
	KindEmptyPacket Kind = "EmptyPacket"
	// KindUnsupportedPacket means the union carried a variant this version
	// does not know. New packet kinds must fail loudly, not drop silently.
	KindUnsupportedPacket Kind = "UnsupportedPacket"
)

// Error is the codec's structured error type.
//
// RuleID is a stable identifier (e.g. ZR-WIRE-002) naming the violated
// invariant. Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
