package relay

import "errors"

var (
	// ErrRoutingNotConfigured means a staking packet arrived with no
	// downstream contract address configured. Fatal for the packet,
	// recovered into an error acknowledgement.
	ErrRoutingNotConfigured = errors.New("relay: btc_staking contract not set")

	// ErrUnsupportedMethod marks the ack/timeout entry points. This endpoint
	// never sends packets, so neither is ever a valid call.
	ErrUnsupportedMethod = errors.New("relay: unsupported method")
)
