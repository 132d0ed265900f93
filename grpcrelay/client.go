package grpcrelay

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/zonerelay/channel"
	"xdao.co/zonerelay/relay"
)

// Client drives a remote relay endpoint over the Relay gRPC service. A host
// or relayer process uses it to run the handshake and deliver packets.
type Client struct {
	cc     *grpc.ClientConn
	client RelayClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewRelayClient(cc), Timeout: 0}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// ChannelOpen runs the open-init/try step and returns the version the
// endpoint requires.
func (c *Client) ChannelOpen(req channel.OpenRequest) (string, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.ChannelOpen(ctx, wrapperspb.Bytes(EncodeOpenRequest(req)))
	if err != nil {
		return "", mapRPC(err)
	}
	return reply.GetValue(), nil
}

// ChannelConnect runs the open-ack/confirm step.
func (c *Client) ChannelConnect(channelID string) (channel.HandshakeResult, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.ChannelConnect(ctx, wrapperspb.String(channelID))
	if err != nil {
		return channel.HandshakeResult{}, mapRPC(err)
	}
	return DecodeHandshakeResult(reply.GetValue())
}

// ChannelClose delivers a close event.
func (c *Client) ChannelClose(channelID string) (channel.HandshakeResult, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.ChannelClose(ctx, wrapperspb.String(channelID))
	if err != nil {
		return channel.HandshakeResult{}, mapRPC(err)
	}
	return DecodeHandshakeResult(reply.GetValue())
}

// PacketReceive delivers one packet and returns the full response, including
// the acknowledgement the endpoint produced for it.
func (c *Client) PacketReceive(destChannel string, data []byte) (*relay.Response, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.PacketReceive(ctx, wrapperspb.Bytes(EncodePacketMsg(destChannel, data)))
	if err != nil {
		return nil, mapRPC(err)
	}
	return DecodeResponse(reply.GetValue())
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
