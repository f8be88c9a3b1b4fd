package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/shopadmin/gateway"
	"github.com/example/shopadmin/pkg/config"
	"github.com/example/shopadmin/pkg/discovery"
	"github.com/example/shopadmin/pkg/grpc"
	"github.com/example/shopadmin/pkg/logger"
	"github.com/example/shopadmin/pkg/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath string
		seed       bool
		advertise  string
	)
	root := &cobra.Command{
		Use:          "gateway",
		Short:        "Serve the shop's REST collection API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, seed, advertise)
		},
	}
	root.Flags().StringVar(&configPath, "config", "config/config.yaml", "config file (yaml)")
	root.Flags().BoolVar(&seed, "seed", false, "load the sample records into empty tables")
	root.Flags().StringVar(&advertise, "advertise", "", "host registered in etcd (default: the machine's hostname)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string, seed bool, advertise string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("Starting API Gateway",
		zap.Int("port", cfg.Gateway.Port),
		zap.String("host", cfg.Gateway.Host),
		zap.String("database", cfg.Database.Driver))

	db, err := repository.Open(&cfg.Database, log)
	if err != nil {
		return err
	}
	if seed {
		if err := repository.Seed(context.Background(), db); err != nil {
			return err
		}
		log.Info("Sample records loaded")
	}

	var audit repository.Auditor = repository.NopAuditor{}
	if cfg.MongoDB.URI != "" {
		if mongoRepo, err := connectAudit(&cfg.MongoDB); err != nil {
			log.Warn("Audit log unavailable, continuing without it", zap.Error(err))
		} else {
			defer mongoRepo.Close(context.Background())
			audit = mongoRepo
		}
	}

	gw := gateway.NewGateway(cfg, log, audit)
	gw.Mount(db)

	health := grpc.NewHealthServer(&cfg.Server, log)
	health.SetServing("", true)
	for _, resource := range gw.Resources() {
		health.SetServing(resource, true)
	}

	errCh := make(chan error, 2)
	go func() {
		if err := gw.Start(); err != nil {
			errCh <- fmt.Errorf("gateway: %w", err)
		}
	}()
	go func() {
		if err := health.Start(); err != nil {
			errCh <- fmt.Errorf("health server: %w", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sd *discovery.ServiceDiscovery
	var instance *discovery.ServiceInstance
	if len(cfg.Etcd.Endpoints) > 0 {
		sd, err = discovery.NewServiceDiscovery(&cfg.Etcd, log)
		if err != nil {
			log.Warn("Failed to connect to etcd, continuing without service discovery", zap.Error(err))
		} else {
			defer sd.Close()
			instance = &discovery.ServiceInstance{Name: cfg.Admin.Service, Host: advertiseHost(advertise), Port: cfg.Gateway.Port}
			if err := sd.Register(ctx, instance); err != nil {
				log.Warn("Failed to register gateway", zap.Error(err))
				instance = nil
			}
		}
	}

	log.Info("Gateway started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case <-sigCh:
		log.Info("Received shutdown signal")
	case runErr = <-errCh:
		log.Error("Server error", zap.Error(runErr))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if instance != nil {
		if err := sd.Deregister(shutdownCtx, instance); err != nil {
			log.Warn("Failed to deregister gateway", zap.Error(err))
		}
	}
	health.Stop()
	if err := gw.Shutdown(shutdownCtx); err != nil {
		log.Warn("Gateway shutdown failed", zap.Error(err))
	}

	log.Info("Gateway stopped")
	return runErr
}

// connectAudit connects to MongoDB and pings it, since the driver connects
// lazily.
func connectAudit(cfg *config.MongoDBConfig) (*repository.MongoRepository, error) {
	mongoRepo, err := repository.NewMongoRepository(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mongoRepo.Ping(ctx); err != nil {
		_ = mongoRepo.Close(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return mongoRepo, nil
}

func advertiseHost(flag string) string {
	if flag != "" {
		return flag
	}
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return "localhost"
}
