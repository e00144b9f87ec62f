package transport

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	pb "prepkit/api/v1"
	"prepkit/internal/literal"
	"prepkit/internal/logging"
	"prepkit/internal/ops"
	"prepkit/internal/preprocess"
)

type Server struct {
	grpc   *grpc.Server
	lis    net.Listener
	health *health.Server
}

// StartServer listens on port and registers the transform and health
// services. Serve must be called to accept connections.
func StartServer(port int, catalog *ops.Catalog, defaults ops.Params) (*Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	return NewServer(lis, catalog, defaults), nil
}

// NewServer wraps an existing listener, e.g. a bufconn listener in tests.
func NewServer(lis net.Listener, catalog *ops.Catalog, defaults ops.Params) *Server {
	s := &Server{
		grpc:   grpc.NewServer(),
		lis:    lis,
		health: health.NewServer(),
	}
	pb.RegisterTransformServiceServer(s.grpc, &transformService{catalog: catalog, defaults: defaults})
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus("prepkit.v1.TransformService", healthpb.HealthCheckResponse_SERVING)
	return s
}

func (s *Server) Addr() net.Addr { return s.lis.Addr() }

// Serve blocks until Stop. Stopping before Serve starts is not an error.
func (s *Server) Serve() error {
	logging.L().Info("transport: serving", "addr", s.lis.Addr().String())
	if err := s.grpc.Serve(s.lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

type transformService struct {
	pb.UnimplementedTransformServiceServer
	catalog  *ops.Catalog
	defaults ops.Params
}

func (t *transformService) Apply(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := pb.DecodeApplyRequest(in, t.defaults)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	input, err := literal.Parse(req.Input)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	out, err := t.catalog.Apply(req.Op, input, req.Params)
	if err != nil {
		logging.L().Debug("transport: apply failed", "op", req.Op, "err", err)
		return nil, toStatus(err)
	}
	return pb.ApplyResponse(literal.Format(out)), nil
}

func (t *transformService) Operations(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return pb.OperationList(t.catalog.Names()), nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, preprocess.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ops.ErrUnknownOperation):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
