package relay

import (
	"xdao.co/zonerelay/event"
	"xdao.co/zonerelay/wire"
)

// ContractCall is an execute call into a sibling contract. The call is
// queued, not executed here; delivery and its atomicity with the packet
// belong to the host.
type ContractCall struct {
	ContractAddr string
	Msg          []byte // JSON execute payload
}

// OutboundMessage is one message queued as a response side effect. Exactly
// one field is set.
type OutboundMessage struct {
	// Execute calls a sibling contract.
	Execute *ContractCall
	// Module is an opaque message for the local chain module, produced by the
	// timestamp collaborator.
	Module []byte
}

// Response is the outcome of one packet receive. Exactly one acknowledgement
// is produced per packet; when Ack is the error arm, Attributes, Events and
// Messages carry no effects from the failed run.
type Response struct {
	Ack        wire.Acknowledgement
	Attributes []event.Attribute
	Events     []event.Event
	Messages   []OutboundMessage
}
