package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/example/shopadmin/pkg/config"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// HealthServer reports the collection store's status over the standard gRPC
// health protocol, one service name per resource plus "" for the store.
type HealthServer struct {
	server *grpc.Server
	health *health.Server
	config *config.ServerConfig
	logger *zap.Logger
}

func NewHealthServer(cfg *config.ServerConfig, logger *zap.Logger) *HealthServer {
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return &HealthServer{
		server: srv,
		health: hs,
		config: cfg,
		logger: logger.Named("health"),
	}
}

func (s *HealthServer) SetServing(service string, serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(service, st)
}

func (s *HealthServer) Start() error {
	lis, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(lis)
}

func (s *HealthServer) Serve(lis net.Listener) error {
	s.logger.Info("Health service started", zap.String("address", lis.Addr().String()))
	return s.server.Serve(lis)
}

// Stop marks every service NOT_SERVING and drains the server.
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

// Check asks target for the status of each service. An unknown service is
// reported as SERVICE_UNKNOWN rather than as an error.
func Check(ctx context.Context, target string, services ...string) (map[string]healthpb.HealthCheckResponse_ServingStatus, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", target, err)
	}
	defer conn.Close()

	client := healthpb.NewHealthClient(conn)
	out := make(map[string]healthpb.HealthCheckResponse_ServingStatus, len(services))
	for _, service := range services {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
		if err != nil {
			if status.Code(err) == codes.NotFound {
				out[service] = healthpb.HealthCheckResponse_SERVICE_UNKNOWN
				continue
			}
			return nil, fmt.Errorf("failed to check %q: %w", service, err)
		}
		out[service] = resp.GetStatus()
	}
	return out, nil
}
