package grpcrelay

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// RelayServer is the server API for the Relay gRPC service: the host-facing
// surface that delivers channel-lifecycle events and packets into the
// endpoint.
//
// We intentionally use protobuf well-known wrapper types so this package does
// not require a protoc/codegen toolchain. BytesValue payloads carry the
// protowire envelopes defined in envelope.go.
//
// Proto definition: relay.proto.
type RelayServer interface {
	ChannelOpen(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	ChannelConnect(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	ChannelClose(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	PacketReceive(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
}

// UnimplementedRelayServer can be embedded to have forward compatible implementations.
type UnimplementedRelayServer struct{}

func (UnimplementedRelayServer) ChannelOpen(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ChannelOpen not implemented")
}
func (UnimplementedRelayServer) ChannelConnect(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ChannelConnect not implemented")
}
func (UnimplementedRelayServer) ChannelClose(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ChannelClose not implemented")
}
func (UnimplementedRelayServer) PacketReceive(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method PacketReceive not implemented")
}

// RegisterRelayServer registers the Relay service on a gRPC server.
func RegisterRelayServer(s grpc.ServiceRegistrar, srv RelayServer) {
	s.RegisterService(&Relay_ServiceDesc, srv)
}

// RelayClient is the client API for the Relay gRPC service.
type RelayClient interface {
	ChannelOpen(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	ChannelConnect(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	ChannelClose(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	PacketReceive(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type relayClient struct{ cc grpc.ClientConnInterface }

func NewRelayClient(cc grpc.ClientConnInterface) RelayClient { return &relayClient{cc: cc} }

func (c *relayClient) ChannelOpen(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/xdao.zonerelay.grpcrelay.v1.Relay/ChannelOpen", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *relayClient) ChannelConnect(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.zonerelay.grpcrelay.v1.Relay/ChannelConnect", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *relayClient) ChannelClose(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.zonerelay.grpcrelay.v1.Relay/ChannelClose", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *relayClient) PacketReceive(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.zonerelay.grpcrelay.v1.Relay/PacketReceive", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _Relay_ChannelOpen_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RelayServer).ChannelOpen(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.zonerelay.grpcrelay.v1.Relay/ChannelOpen"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RelayServer).ChannelOpen(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Relay_ChannelConnect_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RelayServer).ChannelConnect(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.zonerelay.grpcrelay.v1.Relay/ChannelConnect"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RelayServer).ChannelConnect(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Relay_ChannelClose_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RelayServer).ChannelClose(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.zonerelay.grpcrelay.v1.Relay/ChannelClose"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RelayServer).ChannelClose(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Relay_PacketReceive_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RelayServer).PacketReceive(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.zonerelay.grpcrelay.v1.Relay/PacketReceive"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RelayServer).PacketReceive(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Relay_ServiceDesc is the grpc.ServiceDesc for the Relay service.
var Relay_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "xdao.zonerelay.grpcrelay.v1.Relay",
	HandlerType: (*RelayServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ChannelOpen", Handler: _Relay_ChannelOpen_Handler},
		{MethodName: "ChannelConnect", Handler: _Relay_ChannelConnect_Handler},
		{MethodName: "ChannelClose", Handler: _Relay_ChannelClose_Handler},
		{MethodName: "PacketReceive", Handler: _Relay_PacketReceive_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "relay.proto",
}
