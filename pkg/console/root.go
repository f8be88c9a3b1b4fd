// Package console is the operator's command line over the entity list
// controllers.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/shopadmin/pkg/actors"
	"github.com/example/shopadmin/pkg/admin"
	"github.com/example/shopadmin/pkg/client"
	"github.com/example/shopadmin/pkg/config"
	"github.com/example/shopadmin/pkg/discovery"
	"github.com/example/shopadmin/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds what every command shares once flags are parsed.
type App struct {
	in  *bufio.Reader
	out io.Writer

	configPath string
	baseURL    string
	offline    bool
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the `admin` command tree reading confirmations from
// in and writing to out.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	app := &App{in: bufio.NewReader(in), out: out}

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Shop administration console",
		Long:          "Lists, searches, creates, edits and deletes the shop's records through the collection API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	flags := root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "config file (yaml)")
	flags.StringVar(&app.baseURL, "base-url", "", "collection API root, overrides config and discovery")
	flags.BoolVar(&app.offline, "offline", false, "work on the built-in sample records instead of the API")
	flags.StringVar(&app.logLevel, "log-level", "warn", "log level")

	for _, cmd := range entityCommands(app) {
		root.AddCommand(cmd)
	}
	root.AddCommand(statusCommand(app))
	return root
}

// Execute runs the console and reports the error, if any, on out.
func Execute(ctx context.Context, in io.Reader, out io.Writer, args []string) error {
	root := NewRootCommand(in, out)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return err
	}
	return nil
}

func (a *App) setup(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := cfg.Log
	logCfg.Level = a.logLevel
	logCfg.Encoding = "console"
	logCfg.OutputPaths = []string{"stderr"}
	a.logger, err = logger.New(&logCfg)
	if err != nil {
		return err
	}

	if a.offline || a.baseURL != "" {
		return nil
	}
	a.baseURL = cfg.Admin.BaseURL
	if len(cfg.Etcd.Endpoints) > 0 {
		sd, err := discovery.NewServiceDiscovery(&cfg.Etcd, a.logger)
		if err != nil {
			a.logger.Warn("Failed to connect to etcd, using configured base URL", zap.Error(err))
			return nil
		}
		defer sd.Close()
		a.baseURL = sd.ResolveBaseURL(ctx, cfg.Admin.Service, a.baseURL)
	}
	return nil
}

// session is one command's actor system: a collection actor and the
// notification actor printing to the console.
type session[T any, F any] struct {
	system   *actor.ActorSystem
	coll     *actors.Collection[T, F]
	notifier *actors.Notifier
}

func openSession[T any, F any](a *App, e *entity[T, F], assumeYes bool) *session[T, F] {
	system := actors.NewSystem(a.logger)
	notifier := actors.SpawnNotifier(system, a.out, a.logger)

	opts := []admin.Option[T, F]{
		admin.WithNotifier[T, F](notifier),
		admin.WithConfirmer[T, F](confirmer(a, e, assumeYes)),
	}
	if a.offline {
		opts = append(opts, admin.WithSeed[T, F](e.seed()))
	} else {
		opts = append(opts, admin.WithStore[T, F](newStore(a, e.schema)))
	}
	ctrl := admin.New(e.schema, opts...)

	return &session[T, F]{
		system:   system,
		coll:     actors.Spawn(system, ctrl, requestTimeout(a.cfg.Admin.Timeout), a.logger),
		notifier: notifier,
	}
}

func newStore[T any, F any](a *App, schema *admin.Schema[T, F]) *client.Store[T, F] {
	timeout := requestTimeout(a.cfg.Admin.Timeout)
	return client.New(schema, a.baseURL, &http.Client{Timeout: timeout}, a.logger)
}

// close drains both actors so every notification is printed before the
// command writes its result, then stops the system.
func (s *session[T, F]) close() {
	_ = s.coll.Stop()
	_ = s.notifier.Flush()
	s.system.Shutdown()
}

func confirmer[T any, F any](a *App, e *entity[T, F], assumeYes bool) admin.Confirmer[T] {
	return func(_ context.Context, rec T) bool {
		if assumeYes {
			return true
		}
		return a.ask(fmt.Sprintf("Delete %s %d (%s)?", e.schema.Singular, e.schema.ID(rec), e.label(rec)))
	}
}

func (a *App) ask(question string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", question)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func requestTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}
