package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	fsadapter "github.com/bft-labs/envclean/internal/adapters/fs"
	"github.com/bft-labs/envclean/internal/app"
	"github.com/bft-labs/envclean/internal/cliconfig"
	"github.com/bft-labs/envclean/internal/domain"
	"github.com/bft-labs/envclean/pkg/log"
)

const longHelp = `Repair an environment file whose values were split across several lines.

Every KEY=VALUE entry is collapsed back onto one line: line breaks inside the
value are removed, surrounding whitespace is trimmed and one stray trailing
'%' left by some export tools is dropped. Comment lines and blank lines are
kept as they are.

The file is overwritten in place. There is no backup.`

var exampleUsage = strings.TrimSpace(`
  envclean
  envclean deploy/.env.production --diff
  envclean --check || echo "run envclean"
  envclean --watch --lock
`)

// checkOKMessage is printed by --check when nothing would change.
const checkOKMessage = "Environment file is already normalized."

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	log := cliconfig.Logger()

	root := newRootCommand(os.Stdout, log)
	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("envclean")
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer, log zerolog.Logger) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "envclean [path]",
		Short:         "Collapse multi-line values in an environment file",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build set of changed flags; a positional path counts as --path.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			if len(args) == 1 {
				cfg.Path = args[0]
				changed["path"] = true
			}

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log = log.Level(cfg.Level())
			log.Debug().Interface("config", cfg).Msg("configuration")

			return run(cmd.Context(), cfg, out, log)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.envclean/config.toml)")
	root.Flags().StringVar(&cfg.Path, "path", cfg.Path, "environment file to normalize")
	root.Flags().BoolVar(&cfg.Check, "check", cfg.Check, "report whether the file needs normalization without writing it")
	root.Flags().BoolVar(&cfg.Diff, "diff", cfg.Diff, "print the lines normalization changes")
	root.Flags().BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "do not print the success message")
	root.Flags().BoolVarP(&cfg.Watch, "watch", "w", cfg.Watch, "keep running and normalize the file whenever it changes")
	root.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "delay after the last change before normalizing (watch mode)")
	root.Flags().BoolVar(&cfg.Lock, "lock", cfg.Lock, "hold an advisory lock on <path>.lock while running")
	root.Flags().DurationVar(&cfg.LockTimeout, "lock-timeout", cfg.LockTimeout, "how long to wait for the lock")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")

	return root
}

func run(ctx context.Context, cfg cliconfig.Config, out io.Writer, zl zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := log.NewZerologAdapterWithLogger(zl)

	opts := []app.Option{app.WithLogger(logger)}
	if cfg.Lock {
		opts = append(opts, app.WithLocker(fsadapter.NewFileLock(cfg.Path, cfg.LockTimeout)))
	}
	cleaner := app.NewCleaner(fsadapter.NewDocumentFile(cfg.Path), opts...)

	if cfg.Watch {
		return watch(ctx, cfg, cleaner, out, logger, zl)
	}

	mode := app.ModeWrite
	if cfg.Check {
		mode = app.ModeCheck
	}

	report, err := cleaner.Clean(ctx, mode)
	if err != nil {
		var fae *domain.FileAccessError
		if errors.As(err, &fae) {
			zl.Debug().Str("code", fae.Code()).Str("path", fae.Path).Msg("file access failed")
		}
		return err
	}

	if cfg.Diff {
		fmt.Fprint(out, app.LineDiff(report.Original, report.Result.Text))
	}

	if cfg.Check {
		if report.Changed {
			return fmt.Errorf("%s: %w", report.Path, domain.ErrNeedsNormalization)
		}
		if !cfg.Quiet {
			fmt.Fprintln(out, checkOKMessage)
		}
		return nil
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, app.SuccessMessage)
	}
	return nil
}

func watch(ctx context.Context, cfg cliconfig.Config, cleaner *app.Cleaner, out io.Writer, logger log.Logger, zl zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			zl.Info().Msg("received signal, stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	w := app.NewWatcher(cleaner,
		app.WithDebounce(cfg.Debounce),
		app.WithWatchLogger(logger),
		app.WithReportHandler(func(r app.Report) {
			if !r.Written {
				return
			}
			if cfg.Diff {
				fmt.Fprint(out, app.LineDiff(r.Original, r.Result.Text))
			}
			if !cfg.Quiet {
				fmt.Fprintln(out, app.SuccessMessage)
			}
		}),
	)
	return w.Run(ctx)
}
