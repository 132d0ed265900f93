package grpcrelay

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"xdao.co/zonerelay/channel"
	"xdao.co/zonerelay/event"
	"xdao.co/zonerelay/relay"
	"xdao.co/zonerelay/wire"
)

// Transport envelopes for the BytesValue payloads of the Relay service.
// These shapes are owned by the transport; the packet payload itself is the
// wire package's business and crosses this layer untouched.
//
// OpenRequest:      channel_id=1, ordering=2 (varint), counterparty_version=3
// PacketMsg:        dest_channel=1, data=2
// HandshakeResult:  attribute=1 (repeated), event=2 (repeated)
// Response:         ack=1, attribute=2, event=3, message=4 (all but ack repeated)
// Attribute:        key=1, value=2
// Event:            type=1, attribute=2 (repeated)
// OutboundMessage:  execute=1 (contract_addr=1, msg=2), module=2

// EncodeOpenRequest encodes a handshake open request.
func EncodeOpenRequest(req channel.OpenRequest) []byte {
	var b []byte
	b = appendString(b, 1, req.ChannelID)
	if req.Ordering != channel.OrderNone {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(req.Ordering))
	}
	b = appendString(b, 3, req.CounterpartyVersion)
	return b
}

// DecodeOpenRequest decodes a handshake open request.
func DecodeOpenRequest(b []byte) (channel.OpenRequest, error) {
	var req channel.OpenRequest
	err := walk(b, "open request", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			req.ChannelID = string(v)
		case 3:
			req.CounterpartyVersion = string(v)
		}
		return nil
	}, func(num protowire.Number, v uint64) {
		if num == 2 {
			req.Ordering = channel.Order(v)
		}
	})
	return req, err
}

// EncodePacketMsg encodes a packet delivery envelope.
func EncodePacketMsg(destChannel string, data []byte) []byte {
	var b []byte
	b = appendString(b, 1, destChannel)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, data)
	return b
}

// DecodePacketMsg decodes a packet delivery envelope.
func DecodePacketMsg(b []byte) (destChannel string, data []byte, err error) {
	err = walk(b, "packet msg", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			destChannel = string(v)
		case 2:
			data = append([]byte(nil), v...)
		}
		return nil
	}, nil)
	return destChannel, data, err
}

// EncodeHandshakeResult encodes a connect/close outcome.
func EncodeHandshakeResult(res channel.HandshakeResult) []byte {
	var b []byte
	for _, a := range res.Attributes {
		b = appendMessage(b, 1, encodeAttribute(a))
	}
	for _, ev := range res.Events {
		b = appendMessage(b, 2, encodeEvent(ev))
	}
	return b
}

// DecodeHandshakeResult decodes a connect/close outcome.
func DecodeHandshakeResult(b []byte) (channel.HandshakeResult, error) {
	var res channel.HandshakeResult
	err := walk(b, "handshake result", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			a, err := decodeAttribute(v)
			if err != nil {
				return err
			}
			res.Attributes = append(res.Attributes, a)
		case 2:
			ev, err := decodeEvent(v)
			if err != nil {
				return err
			}
			res.Events = append(res.Events, ev)
		}
		return nil
	}, nil)
	return res, err
}

// EncodeResponse encodes a packet-receive response, acknowledgement included.
func EncodeResponse(resp *relay.Response) ([]byte, error) {
	ack, err := wire.EncodeAcknowledgement(resp.Ack)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendMessage(b, 1, ack)
	for _, a := range resp.Attributes {
		b = appendMessage(b, 2, encodeAttribute(a))
	}
	for _, ev := range resp.Events {
		b = appendMessage(b, 3, encodeEvent(ev))
	}
	for i := range resp.Messages {
		b = appendMessage(b, 4, encodeOutbound(&resp.Messages[i]))
	}
	return b, nil
}

// DecodeResponse decodes a packet-receive response.
func DecodeResponse(b []byte) (*relay.Response, error) {
	var resp relay.Response
	sawAck := false
	err := walk(b, "receive response", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			ack, err := wire.DecodeAcknowledgement(v)
			if err != nil {
				return err
			}
			resp.Ack = ack
			sawAck = true
		case 2:
			a, err := decodeAttribute(v)
			if err != nil {
				return err
			}
			resp.Attributes = append(resp.Attributes, a)
		case 3:
			ev, err := decodeEvent(v)
			if err != nil {
				return err
			}
			resp.Events = append(resp.Events, ev)
		case 4:
			m, err := decodeOutbound(v)
			if err != nil {
				return err
			}
			resp.Messages = append(resp.Messages, m)
		}
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	if !sawAck {
		return nil, fmt.Errorf("%w: receive response without acknowledgement", ErrBadEnvelope)
	}
	return &resp, nil
}

func encodeAttribute(a event.Attribute) []byte {
	var b []byte
	b = appendString(b, 1, a.Key)
	b = appendString(b, 2, a.Value)
	return b
}

func decodeAttribute(b []byte) (event.Attribute, error) {
	var a event.Attribute
	err := walk(b, "attribute", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			a.Key = string(v)
		case 2:
			a.Value = string(v)
		}
		return nil
	}, nil)
	return a, err
}

func encodeEvent(ev event.Event) []byte {
	var b []byte
	b = appendString(b, 1, ev.Type)
	for _, a := range ev.Attributes {
		b = appendMessage(b, 2, encodeAttribute(a))
	}
	return b
}

func decodeEvent(b []byte) (event.Event, error) {
	var ev event.Event
	err := walk(b, "event", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			ev.Type = string(v)
		case 2:
			a, err := decodeAttribute(v)
			if err != nil {
				return err
			}
			ev.Attributes = append(ev.Attributes, a)
		}
		return nil
	}, nil)
	return ev, err
}

func encodeOutbound(m *relay.OutboundMessage) []byte {
	var b []byte
	if m.Execute != nil {
		var e []byte
		e = appendString(e, 1, m.Execute.ContractAddr)
		e = appendBytes(e, 2, m.Execute.Msg)
		b = appendMessage(b, 1, e)
	}
	b = appendBytes(b, 2, m.Module)
	return b
}

func decodeOutbound(b []byte) (relay.OutboundMessage, error) {
	var m relay.OutboundMessage
	err := walk(b, "outbound message", func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			var call relay.ContractCall
			err := walk(v, "contract call", func(num protowire.Number, v []byte) error {
				switch num {
				case 1:
					call.ContractAddr = string(v)
				case 2:
					call.Msg = append([]byte(nil), v...)
				}
				return nil
			}, nil)
			if err != nil {
				return err
			}
			m.Execute = &call
		case 2:
			m.Module = append([]byte(nil), v...)
		}
		return nil
	}, nil)
	return m, err
}

func walk(b []byte, ctx string, bytesFn func(protowire.Number, []byte) error, varintFn func(protowire.Number, uint64)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %s: %v", ErrBadEnvelope, ctx, protowire.ParseError(n))
		}
		b = b[n:]
		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("%w: %s: %v", ErrBadEnvelope, ctx, protowire.ParseError(n))
			}
			b = b[n:]
			if bytesFn != nil {
				if err := bytesFn(num, v); err != nil {
					return err
				}
			}
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("%w: %s: %v", ErrBadEnvelope, ctx, protowire.ParseError(n))
			}
			b = b[n:]
			if varintFn != nil {
				varintFn(num, v)
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: %s: %v", ErrBadEnvelope, ctx, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return nil
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}
