// Package relay is the packet-receive core of the endpoint: it decodes
// inbound packets, routes them to the handler for their variant, and wraps
// every outcome in exactly one acknowledgement.
//
// Error handling is deliberately two-tiered. Handshake errors (see the
// channel package) abort the handshake at the host level. Packet errors do
// not: any error in the decode -> dispatch -> handle pipeline is converted
// into an error acknowledgement, the host call succeeds, and none of the
// failed run's effects are kept.
package relay

import (
	"fmt"

	"xdao.co/zonerelay/digest"
	"xdao.co/zonerelay/event"
	"xdao.co/zonerelay/translate"
	"xdao.co/zonerelay/wire"
)

// TimestampProcessor verifies a BTC timestamp bundle and updates the
// collaborator's own state.
//
// Contract:
//   - Process MAY return one outbound message for the local chain module.
//   - Process is synchronous; it completes or fails immediately.
//   - A returned error fails the packet (error acknowledgement), not the
//     host call.
type TimestampProcessor interface {
	Process(payload []byte) (*OutboundMessage, error)
}

// TimestampProcessorFunc adapts a function to the processor interface.
type TimestampProcessorFunc func(payload []byte) (*OutboundMessage, error)

func (f TimestampProcessorFunc) Process(payload []byte) (*OutboundMessage, error) {
	return f(payload)
}

// Endpoint receives packets on behalf of the host.
//
// The host serializes one call per received packet; Endpoint holds no mutable
// state of its own and performs no locking.
type Endpoint struct {
	config     ConfigStore
	timestamps TimestampProcessor
}

// New builds an endpoint. A nil timestamps collaborator is replaced with a
// no-op processor that verifies nothing and produces no message.
func New(config ConfigStore, timestamps TimestampProcessor) *Endpoint {
	if timestamps == nil {
		timestamps = TimestampProcessorFunc(func([]byte) (*OutboundMessage, error) {
			return nil, nil
		})
	}
	return &Endpoint{config: config, timestamps: timestamps}
}

// OnPacketReceive processes one received packet and always returns a
// response carrying exactly one acknowledgement.
//
// This is the acknowledgement adapter: it never fails. Any error from the
// pipeline is converted into an error acknowledgement whose diagnostic
// includes the formatted cause, and the failed run's attributes and messages
// are discarded. destChannelID is the local channel the packet arrived on.
func (e *Endpoint) OnPacketReceive(destChannelID string, data []byte) *Response {
	resp, err := e.receive(destChannelID, data)
	if err != nil {
		resp = &Response{Ack: wire.NewErrorAck(fmt.Sprintf("invalid packet: %v", err))}
	}
	resp.Events = append(resp.Events, event.New("ibc",
		"packet", "receive",
		"channel_id", destChannelID,
		"packet_cid", digest.PayloadCIDString(data),
	))
	return resp
}

// receive is the fallible pipeline wrapped by OnPacketReceive.
func (e *Endpoint) receive(destChannelID string, data []byte) (*Response, error) {
	pd, err := wire.DecodePacketData(data)
	if err != nil {
		return nil, err
	}
	// The union is closed; the decoder guarantees exactly one variant.
	switch {
	case pd.BtcTimestamp != nil:
		return e.handleBtcTimestamp(pd.BtcTimestamp)
	case pd.BtcStaking != nil:
		return e.handleBtcStaking(pd.BtcStaking)
	default:
		return nil, fmt.Errorf("unsupported packet variant")
	}
}

// handleBtcTimestamp delegates verification and state update to the
// timestamp collaborator, then applies the notification policy gate.
func (e *Endpoint) handleBtcTimestamp(ts *wire.BtcTimestamp) (*Response, error) {
	cfg, err := e.config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	msg, err := e.timestamps.Process(ts.Raw)
	if err != nil {
		return nil, fmt.Errorf("handle btc timestamp: %w", err)
	}

	resp := &Response{
		Ack: wire.NewResultAck(nil),
		Attributes: []event.Attribute{
			{Key: "action", Value: "receive_btc_timestamp"},
		},
	}
	if msg != nil && cfg.NotifyCosmosZone {
		resp.Messages = append(resp.Messages, *msg)
	}
	return resp, nil
}

// handleBtcStaking translates the staking event and queues exactly one call
// to the configured downstream contract.
func (e *Endpoint) handleBtcStaking(p *wire.BtcStaking) (*Response, error) {
	cfg, err := e.config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.BtcStakingAddr == "" {
		return nil, ErrRoutingNotConfigured
	}

	msg, err := translate.BtcStakingMsgOf(p)
	if err != nil {
		return nil, err
	}
	payload, err := msg.JSON()
	if err != nil {
		return nil, fmt.Errorf("encode btc_staking call: %w", err)
	}

	return &Response{
		Ack: wire.NewResultAck(nil),
		Attributes: []event.Attribute{
			{Key: "action", Value: "receive_btc_staking"},
		},
		Messages: []OutboundMessage{{
			Execute: &ContractCall{ContractAddr: cfg.BtcStakingAddr, Msg: payload},
		}},
	}, nil
}

// OnAcknowledgePacket would handle an acknowledgement for a packet this
// endpoint sent. It sends none, so the call is permanently unsupported.
func (e *Endpoint) OnAcknowledgePacket() error { return ErrUnsupportedMethod }

// OnTimeoutPacket would handle a timeout for a packet this endpoint sent.
// It sends none, so the call is permanently unsupported.
func (e *Endpoint) OnTimeoutPacket() error { return ErrUnsupportedMethod }
