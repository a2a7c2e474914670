package rpc

import (
	"context"
	"time"

	"github.com/alfagnish/itemsd/internal/items"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "items.v1.Items"

// ──────────────────────────────────────────────────────────────
// Messages.
// ──────────────────────────────────────────────────────────────

type ListRequest struct{}

type ListResponse struct {
	Items []items.Item `json:"items"`
}

type IDRequest struct {
	ID int `json:"id"`
}

type CreateRequest = items.Draft

type UpdateRequest struct {
	ID        int     `json:"id"`
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// ItemsServer is the server API for the Items service.
type ItemsServer interface {
	List(context.Context, *ListRequest) (*ListResponse, error)
	Get(context.Context, *IDRequest) (*items.Item, error)
	Create(context.Context, *CreateRequest) (*items.Item, error)
	Update(context.Context, *UpdateRequest) (*items.Item, error)
	Delete(context.Context, *IDRequest) (*items.Item, error)
}

var errNotFound = status.Error(codes.NotFound, "not found")

// Service implements ItemsServer on top of an items.Store.
type Service struct {
	store *items.Store
}

// NewService creates a new Service.
func NewService(s *items.Store) *Service {
	return &Service{store: s}
}

func (s *Service) List(_ context.Context, _ *ListRequest) (*ListResponse, error) {
	return &ListResponse{Items: s.store.All()}, nil
}

func (s *Service) Get(_ context.Context, req *IDRequest) (*items.Item, error) {
	it, ok := s.store.Get(req.ID)
	if !ok {
		return nil, errNotFound
	}
	return &it, nil
}

func (s *Service) Create(_ context.Context, req *CreateRequest) (*items.Item, error) {
	it := s.store.Create(*req)
	return &it, nil
}

func (s *Service) Update(_ context.Context, req *UpdateRequest) (*items.Item, error) {
	it, ok := s.store.Update(req.ID, items.Patch{Title: req.Title, Completed: req.Completed})
	if !ok {
		return nil, errNotFound
	}
	return &it, nil
}

// Delete mirrors the HTTP endpoint: the item is returned and kept.
func (s *Service) Delete(ctx context.Context, req *IDRequest) (*items.Item, error) {
	return s.Get(ctx, req)
}

// ──────────────────────────────────────────────────────────────
// Service descriptor.
// ──────────────────────────────────────────────────────────────

func unaryHandler[Req, Resp any](method string, call func(ItemsServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ItemsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ItemsServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes the Items service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ItemsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: unaryHandler("List", ItemsServer.List)},
		{MethodName: "Get", Handler: unaryHandler("Get", ItemsServer.Get)},
		{MethodName: "Create", Handler: unaryHandler("Create", ItemsServer.Create)},
		{MethodName: "Update", Handler: unaryHandler("Update", ItemsServer.Update)},
		{MethodName: "Delete", Handler: unaryHandler("Delete", ItemsServer.Delete)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "items/v1/items.proto",
}

// NewServer returns a gRPC server exposing the Items service and the
// standard health service.
func NewServer(s *items.Store, log *zap.Logger) *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(log)))
	srv.RegisterService(&ServiceDesc, NewService(s))

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

func loggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Info("rpc",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		)
		return resp, err
	}
}
