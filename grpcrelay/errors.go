package grpcrelay

import (
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/zonerelay/channel"
)

// ErrBadEnvelope marks a malformed transport envelope. It is about this
// layer's framing only; packet payload errors belong to the wire package and
// are reported inside acknowledgements, not here.
var ErrBadEnvelope = errors.New("grpcrelay: malformed envelope")

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.FailedPrecondition {
		return err
	}
	// Server uses FailedPrecondition for handshake rejections; recover the
	// channel sentinel when the message identifies one.
	for _, sentinel := range []error{channel.ErrUnorderedChannel, channel.ErrInvalidCounterpartyVersion} {
		if strings.HasPrefix(st.Message(), sentinel.Error()) {
			return sentinel
		}
	}
	return err
}
