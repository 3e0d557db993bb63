// Command routerd runs the router, session manager, and administrative
// HTTP surface as a single long-lived process, wiring together the
// configured Store backend, the audit trail, and (optionally) an
// OpenTelemetry exporter and a routes.yaml hot-reload watcher.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowgate/flowgate/pkg/api/rest"
	"github.com/flowgate/flowgate/pkg/audit"
	"github.com/flowgate/flowgate/pkg/collab"
	"github.com/flowgate/flowgate/pkg/config"
	rerrors "github.com/flowgate/flowgate/pkg/errors"
	"github.com/flowgate/flowgate/pkg/interfaces"
	"github.com/flowgate/flowgate/pkg/logging"
	"github.com/flowgate/flowgate/pkg/router"
	"github.com/flowgate/flowgate/pkg/session"
	"github.com/flowgate/flowgate/pkg/store/redis"
	"github.com/flowgate/flowgate/pkg/store/s3"
	"github.com/flowgate/flowgate/pkg/telemetry"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "routerd",
	Short: "Run the flowgate router, session manager, and admin API",
	Long: `routerd loads configuration from (in ascending priority)
/etc/flowgate/config.yaml, ~/.flowgate/config.yaml, ./.flowgate.yaml,
and FLOWGATE_* environment variables, then starts the router's worker
pool, the session manager, and the administrative HTTP API.`,
	RunE: runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	mgr := config.NewManager()
	if err := mgr.Load(); err != nil {
		return fmt.Errorf("routerd: load config: %w", err)
	}
	cfg := mgr.Get()

	log := logging.New("routerd", logging.LevelInfo)

	store, err := buildStore(cmd.Context(), cfg.Store)
	if err != nil {
		return fmt.Errorf("routerd: build store: %w", err)
	}

	var auditSink router.RouteAuditSink
	var sessionAudit session.AuditSink
	if cfg.Audit.Enabled {
		trail, err := audit.Open(cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("routerd: open audit trail: %w", err)
		}
		defer trail.Close()
		auditSink, sessionAudit = trail, trail
	}

	builder := collab.NewFieldRuleBuilder()
	envManager := collab.NewLoggingEnvironmentManager(log)

	routerOpts := []router.Option{router.WithLogger(log)}
	if auditSink != nil {
		routerOpts = append(routerOpts, router.WithAuditSink(auditSink))
	}

	var shutdownTelemetry func(context.Context) error
	if cfg.Telemetry.Enabled {
		tcfg := telemetry.DefaultConfig("flowgate-router")
		tcfg.Endpoint = cfg.Telemetry.Endpoint
		exporter := telemetry.New(tcfg)
		shutdown, err := exporter.Init(cmd.Context())
		if err != nil {
			return fmt.Errorf("routerd: init telemetry: %w", err)
		}
		shutdownTelemetry = shutdown
		routerOpts = append(routerOpts, router.WithTracer(exporter.Tracer()))
	}

	routerCfg := router.Config{
		NumThreads:     cfg.Router.Threads,
		QueueCapacity:  cfg.Router.QueueCapacity,
		DequeueTimeout: cfg.Router.DequeueTimeout,
	}
	r := router.New(routerCfg, builder, envManager, store, routerOpts...)

	var sessionOpts []session.Option
	if sessionAudit != nil {
		sessionOpts = append(sessionOpts, session.WithAuditSink(sessionAudit))
	}
	sessions := session.New(sessionOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Routes.SeedFile != "" {
		if seed, err := router.LoadSeedFile(cfg.Routes.SeedFile); err == nil {
			if err := r.ApplySeed(ctx, builder, seed); err != nil {
				log.Errorf("routerd: apply seed file: %v", err)
			}
		} else if !os.IsNotExist(err) {
			log.Errorf("routerd: load seed file: %v", err)
		}

		if cfg.Routes.Watch {
			stop, err := r.WatchSeedFile(ctx, cfg.Routes.SeedFile, builder, log)
			if err != nil {
				log.Errorf("routerd: watch seed file: %v", err)
			} else {
				defer stop()
			}
		}
	}

	if err := r.Run(nil); err != nil {
		return fmt.Errorf("routerd: start router: %w", err)
	}
	defer r.Stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := rest.NewServer(rest.Config{Addr: addr, Router: r, Sessions: sessions})

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		if err := srv.Start(); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("routerd: serve: %w", err)
		}
	case <-sigCh:
		log.Infof("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("routerd: shutdown: %v", err)
		}
		if shutdownTelemetry != nil {
			if err := shutdownTelemetry(shutdownCtx); err != nil {
				log.Errorf("routerd: shutdown telemetry: %v", err)
			}
		}
	}

	return nil
}

func buildStore(ctx context.Context, cfg config.StoreConfig) (interfaces.Store, error) {
	switch cfg.Backend {
	case "s3":
		s3Cfg := s3.Config{
			Bucket:       cfg.S3.Bucket,
			Prefix:       cfg.S3.Prefix,
			Region:       cfg.S3.Region,
			Endpoint:     cfg.S3.Endpoint,
			UsePathStyle: cfg.S3.UsePathStyle,
		}
		return s3.New(ctx, s3Cfg)
	case "redis", "":
		redisCfg := redis.Config{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			Database: cfg.Redis.Database,
			Prefix:   cfg.Redis.Prefix,
			TTL:      cfg.Redis.TTL,
		}
		return redis.New(redisCfg)
	default:
		return nil, rerrors.BuildError(fmt.Errorf("unknown store backend %q", cfg.Backend))
	}
}
