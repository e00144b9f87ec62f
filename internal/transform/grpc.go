package transform

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	pb "prepkit/api/v1"
	"prepkit/internal/literal"
	"prepkit/internal/ops"
	"prepkit/internal/preprocess"
	"prepkit/internal/transport"
)

// GRPCClient applies operations on a remote prepkit server.
type GRPCClient struct {
	conn *grpc.ClientConn
	svc  pb.TransformServiceClient
}

func NewGRPCClient(target string, opts ...grpc.DialOption) (*GRPCClient, error) {
	conn, err := transport.Dial(target, opts...)
	if err != nil {
		return nil, err
	}
	return &GRPCClient{
		conn: conn,
		svc:  pb.NewTransformServiceClient(conn),
	}, nil
}

func (c *GRPCClient) Apply(ctx context.Context, op string, input any, p ops.Params) (any, error) {
	req, err := pb.ApplyRequest{Op: op, Input: literal.Format(input), Params: p}.Struct()
	if err != nil {
		return nil, err
	}
	resp, err := c.svc.Apply(ctx, req)
	if err != nil {
		return nil, fromStatus(op, err)
	}
	text, err := pb.DecodeApplyResponse(resp)
	if err != nil {
		return nil, err
	}
	return literal.Parse(text)
}

func (c *GRPCClient) Operations(ctx context.Context) ([]string, error) {
	l, err := c.svc.Operations(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, err
	}
	return pb.DecodeOperationList(l), nil
}

func (c *GRPCClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// fromStatus restores the local error kinds carried by status codes. Other
// statuses are returned as is so callers can retry on them.
func fromStatus(op string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", preprocess.ErrInvalidArgument, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w %q", ops.ErrUnknownOperation, op)
	default:
		return err
	}
}

// Retryable reports whether err is a transport failure worth another attempt.
func Retryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}
