// Package channel validates the relay channel handshake and tracks the
// lifecycle of open channels.
//
// The channel protocol is a four-step handshake (open-init/try, then
// open-ack/confirm) followed by packet flow. This endpoint accepts only
// ordered channels speaking exactly one protocol version.
package channel

import (
	"fmt"

	"xdao.co/zonerelay/event"
)

// Version is the protocol version this endpoint requires. It is returned on
// every successful open and demanded of any counterparty that offers one.
const Version = "zoneconcierge-1"

// Order is the delivery guarantee of a channel.
type Order int

const (
	OrderNone Order = iota
	OrderUnordered
	OrderOrdered
)

func (o Order) String() string {
	switch o {
	case OrderUnordered:
		return "unordered"
	case OrderOrdered:
		return "ordered"
	default:
		return "none"
	}
}

// State is a channel's position in its linear lifecycle. There is no reopen.
type State int

const (
	StateInit State = iota
	StateTryOpen
	StateOpen
	StateClosed
)

// Channel is the metadata recorded for one channel.
type Channel struct {
	ID       string
	Ordering Order
	Version  string
	State    State
}

// OpenRequest carries the handshake fields offered by the host.
//
// CounterpartyVersion is empty on the init path; it is only present on the
// try path, and only then is the exact-match check performed. There is no
// negotiation beyond that check.
type OpenRequest struct {
	ChannelID           string
	Ordering            Order
	CounterpartyVersion string
}

// HandshakeResult is the observable outcome of a connect or close step.
type HandshakeResult struct {
	Attributes []event.Attribute
	Events     []event.Event
}

// Manager validates handshakes and records channel state.
//
// The host serializes lifecycle calls, so Manager performs no locking of its
// own.
type Manager struct {
	channels map[string]*Channel
}

func NewManager() *Manager {
	return &Manager{channels: make(map[string]*Channel)}
}

// Open handles the open-init and open-try steps and returns the version this
// endpoint requires.
//
// It fails when the proposed ordering is not Ordered, or when a counterparty
// version is offered that is not exactly Version. On success the channel is
// recorded in Init (no counterparty version) or TryOpen state.
func (m *Manager) Open(req OpenRequest) (string, error) {
	if req.Ordering != OrderOrdered {
		return "", fmt.Errorf("%w: got %s", ErrUnorderedChannel, req.Ordering)
	}
	if req.CounterpartyVersion != "" && req.CounterpartyVersion != Version {
		return "", fmt.Errorf("%w: require %q, counterparty offered %q",
			ErrInvalidCounterpartyVersion, Version, req.CounterpartyVersion)
	}

	st := StateInit
	if req.CounterpartyVersion != "" {
		st = StateTryOpen
	}
	m.channels[req.ChannelID] = &Channel{
		ID:       req.ChannelID,
		Ordering: req.Ordering,
		Version:  Version,
		State:    st,
	}
	return Version, nil
}

// Connect handles the open-ack and open-confirm steps. It is a side-effect
// free confirmation: it marks the channel open and emits the connect event.
func (m *Manager) Connect(channelID string) HandshakeResult {
	if ch, ok := m.channels[channelID]; ok {
		ch.State = StateOpen
	}
	return HandshakeResult{
		Attributes: []event.Attribute{
			{Key: "action", Value: "ibc_connect"},
			{Key: "channel_id", Value: channelID},
		},
		Events: []event.Event{event.New("ibc", "channel", "connect")},
	}
}

// Close records channel closure.
//
// TODO: erase channel-scoped state when a channel closes. Today only the
// state marker flips; the record itself is kept.
func (m *Manager) Close(channelID string) HandshakeResult {
	if ch, ok := m.channels[channelID]; ok {
		ch.State = StateClosed
	}
	return HandshakeResult{
		Attributes: []event.Attribute{
			{Key: "action", Value: "ibc_close"},
			{Key: "channel_id", Value: channelID},
		},
	}
}

// Get returns the recorded channel, if any.
func (m *Manager) Get(channelID string) (Channel, bool) {
	ch, ok := m.channels[channelID]
	if !ok {
		return Channel{}, false
	}
	return *ch, true
}
