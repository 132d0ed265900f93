package channel

import "errors"

// Handshake errors are fatal: the channel never opens. This is deliberately
// different from packet errors, which are recovered into error
// acknowledgements by the relay package.
var (
	ErrUnorderedChannel           = errors.New("channel: only ordered channels are supported")
	ErrInvalidCounterpartyVersion = errors.New("channel: counterparty version mismatch")
)

// IsHandshakeError reports whether err is a handshake rejection.
func IsHandshakeError(err error) bool {
	return errors.Is(err, ErrUnorderedChannel) || errors.Is(err, ErrInvalidCounterpartyVersion)
}
