package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/shandysiswandi/gonav/internal/nav"
	"github.com/shandysiswandi/gonav/internal/nav/entity"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gonav/internal/pkg/pkglog"
	"github.com/shandysiswandi/gonav/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gonav/internal/pkg/pkguid"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

// NewCommand builds the gonav command tree.
func NewCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gonav",
		Short: "Path router with a page cache and a fragment server",
		Long: `gonav serves HTML pages as full documents or PJAX fragments and ships
a headless router that navigates them the way a browser client would.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		serveCmd(),
		fetchCmd(),
		versionCmd(),
	)

	return root
}

func serveCmd() *cobra.Command {
	var (
		configPath string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the fragment server",
		RunE: func(cmd *cobra.Command, args []string) error {
			application := New(configPath) // Initialize the application
			wait := application.Start()    // Start the application and wait for the termination signal
			<-wait                         // Wait for the application to receive a termination signal

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			application.Stop(ctx) // Stop the application gracefully
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the config file")
	cmd.Flags().DurationVar(&timeout, "shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	return cmd
}

func fetchCmd() *cobra.Command {
	var (
		configPath string
		baseURL    string
		container  string
		prefetch   []string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "fetch [paths...]",
		Short: "Navigate a running site headlessly and print each page",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			pkglog.InitLoggingWith(cmd.ErrOrStderr(), level)

			cfg := pkgconfig.NewViperFromMap(nil)
			if configPath != "" {
				loaded, err := pkgconfig.NewViper(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			if baseURL != "" {
				cfg.Override("router.base_url", baseURL)
			}
			if container != "" {
				cfg.Override("router.container", container)
			}

			return runFetch(cmd.Context(), cmd.OutOrStdout(), nav.ClientConfigFrom(cfg), prefetch, args)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the config file")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Site origin, overrides router.base_url")
	cmd.Flags().StringVar(&container, "container", "", "Container selector, overrides router.container")
	cmd.Flags().StringSliceVar(&prefetch, "prefetch", nil, "Paths to prefetch before navigating")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log router events")

	return cmd
}

func runFetch(ctx context.Context, out io.Writer, cfg nav.ClientConfig, prefetch, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		ids *pkguid.Snowflake
		err error
	)
	if cfg.Node < 0 {
		ids, err = pkguid.NewSnowflake()
	} else {
		ids, err = pkguid.NewSnowflakeNode(cfg.Node)
	}
	if err != nil {
		return err
	}

	runner := pkgroutine.NewManager(cfg.Router.PrefetchWorkers)
	h, err := nav.NewHeadless(nav.HeadlessDependency{
		Config:   cfg,
		Registry: prometheus.NewRegistry(),
		Runner:   runner,
		ID:       ids,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := h.Close(context.Background()); err != nil {
			slog.Warn("failed to drain router events", "error", err)
		}
	}()

	if err := h.Boot(ctx); err != nil {
		slog.WarnContext(ctx, "failed to read csrf token from site root", "error", err)
	}

	h.Router.Route("*", func(ctx context.Context, c *entity.Context) error {
		slog.DebugContext(ctx, "page settled", "path", c.Path)
		return nil
	})

	if len(prefetch) > 0 {
		if err := h.Router.Prefetch(ctx, prefetch...); err != nil {
			slog.WarnContext(ctx, "prefetch incomplete", "error", err)
		}
	}

	for _, p := range paths {
		if err := h.Router.Navigate(ctx, p); err != nil {
			return fmt.Errorf("navigate %s: %w", p, err)
		}

		page := h.Document.Page()
		fmt.Fprintf(out, "# %s\n", page.Path)
		if page.Title != "" {
			fmt.Fprintf(out, "title: %s\n", page.Title)
		}
		fmt.Fprintf(out, "\n%s\n\n", page.Content)
	}

	return runner.Wait()
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Version:    %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Commit:     %s\n", commit)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
