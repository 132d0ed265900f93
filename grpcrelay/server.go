package grpcrelay

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/zonerelay/channel"
	"xdao.co/zonerelay/relay"
)

// Server exposes a relay endpoint over the Relay gRPC service.
//
// Handshake rejections surface as gRPC errors, matching the protocol's rule
// that a failed handshake fails the host call. Packet processing never does:
// PacketReceive returns a response whose acknowledgement carries any failure.
type Server struct {
	UnimplementedRelayServer
	Channels *channel.Manager
	Endpoint *relay.Endpoint
	Log      zerolog.Logger
}

func (s *Server) ChannelOpen(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	if s == nil || s.Channels == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing channel manager")
	}
	req, err := DecodeOpenRequest(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	version, err := s.Channels.Open(req)
	if err != nil {
		s.Log.Warn().Str("channel_id", req.ChannelID).Err(err).Msg("channel open rejected")
		return nil, mapErr(err)
	}
	s.Log.Info().Str("channel_id", req.ChannelID).Str("version", version).Msg("channel open accepted")
	return wrapperspb.String(version), nil
}

func (s *Server) ChannelConnect(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Channels == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing channel manager")
	}
	res := s.Channels.Connect(in.GetValue())
	s.Log.Info().Str("channel_id", in.GetValue()).Msg("channel connected")
	return wrapperspb.Bytes(EncodeHandshakeResult(res)), nil
}

func (s *Server) ChannelClose(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Channels == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing channel manager")
	}
	res := s.Channels.Close(in.GetValue())
	s.Log.Info().Str("channel_id", in.GetValue()).Msg("channel closed")
	return wrapperspb.Bytes(EncodeHandshakeResult(res)), nil
}

func (s *Server) PacketReceive(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Endpoint == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing endpoint")
	}
	destChannel, data, err := DecodePacketMsg(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp := s.Endpoint.OnPacketReceive(destChannel, data)
	if resp.Ack.Success() {
		s.Log.Info().
			Str("channel_id", destChannel).
			Int("messages", len(resp.Messages)).
			Msg("packet acknowledged")
	} else {
		s.Log.Warn().
			Str("channel_id", destChannel).
			Str("ack_error", resp.Ack.Error.Message).
			Msg("packet acknowledged with error")
	}

	out, err := EncodeResponse(resp)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Bytes(out), nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if channel.IsHandshakeError(err) {
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
