package console

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/example/shopadmin/pkg/grpc"
	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// resources are the health service names the gateway reports.
var resources = []string{"users", "products", "categories", "orders", "payments", "promotions", "reviews"}

func statusCommand(a *App) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report the collection store's gRPC health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				target = net.JoinHostPort("localhost", strconv.Itoa(a.cfg.Server.Port))
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			services := append([]string{""}, resources...)
			statuses, err := grpc.Check(ctx, target, services...)
			if err != nil {
				return err
			}
			down := 0
			for _, svc := range services {
				name := svc
				if name == "" {
					name = "store"
				}
				st := statuses[svc]
				if st != healthpb.HealthCheckResponse_SERVING {
					down++
				}
				fmt.Fprintf(a.out, "%-12s %s\n", name, st)
			}
			if down > 0 {
				return fmt.Errorf("%d of %d services not serving at %s", down, len(services), target)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "health endpoint host:port (default localhost:<server.port>)")
	return cmd
}
