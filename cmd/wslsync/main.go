package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wsl-tools/wslsync/internal/config"
	"github.com/wsl-tools/wslsync/internal/engine"
	"github.com/wsl-tools/wslsync/internal/event"
	"github.com/wsl-tools/wslsync/internal/stats"
	"github.com/wsl-tools/wslsync/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		dryRun      bool
		verbose     bool
		quiet       bool
		noTimes     bool
		verifyFlag  bool
		bwLimitStr  string
		logFile     string
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:   "wslsync [flags]",
		Short: "Sync configured files from a Windows mount into a WSL2 tree",
		Long: `wslsync mirrors a configured set of files and directories from a
Windows filesystem mount (e.g. /mnt/c/...) into a native WSL2 directory,
then removes anything in the destination the config no longer lists.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "wslsync %s\n", version)
				return nil
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			// Parse bandwidth limit.
			var bwLimit int64
			if bwLimitStr != "" {
				bwLimit, err = parseSize(bwLimitStr)
				if err != nil {
					return fmt.Errorf("invalid --bwlimit: %w", err)
				}
			}

			// Configure logging.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if !quiet {
				logLevel = slog.LevelInfo
			}
			textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			logger := slog.New(logHandler)
			slog.SetDefault(logger)

			if dryRun {
				slog.Info("dry run mode")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector := stats.NewCollector()
			events := make(chan event.Event, 256)

			// When --log is set, tee events through a logging goroutine that
			// writes structured records before forwarding to the presenter.
			presenterEvents := (<-chan event.Event)(events)
			if logFile != "" {
				teed := make(chan event.Event, 256)
				go func() {
					for ev := range events {
						attrs := []slog.Attr{
							slog.String("type", ev.Type.String()),
							slog.String("path", ev.Path),
							slog.Int64("size", ev.Size),
						}
						if ev.Error != nil {
							attrs = append(attrs, slog.String("error", ev.Error.Error()))
						}
						slog.LogAttrs(context.Background(), slog.LevelInfo, "wslsync.event", attrs...)
						teed <- ev
					}
					close(teed)
				}()
				presenterEvents = teed
			}

			presenter := ui.NewPresenter(ui.Config{
				Writer:    os.Stdout,
				ErrWriter: os.Stderr,
				Stats:     collector,
				IsTTY:     ui.IsTTY(os.Stderr.Fd()),
				Quiet:     quiet,
				DryRun:    dryRun,
			})

			engineCfg := engine.Config{
				Source:  cfg.WindowsBase,
				Dest:    cfg.WSL2Base,
				Entries: cfg.Files,
				DryRun:  dryRun,
				NoTimes: noTimes,
				Verify:  verifyFlag,
				BWLimit: bwLimit,
				Logger:  logger,
				Events:  events,
				Stats:   collector,
			}

			slog.Debug("starting sync",
				"source", cfg.WindowsBase,
				"dest", cfg.WSL2Base,
				"entries", len(cfg.Files),
			)

			// Presenter in background, engine in foreground.
			var presenterErr error
			var presenterWg sync.WaitGroup
			presenterWg.Add(1)
			go func() {
				defer presenterWg.Done()
				presenterErr = presenter.Run(presenterEvents)
			}()

			result := engine.Run(ctx, engineCfg)
			stop()
			close(events)
			presenterWg.Wait()
			if presenterErr != nil {
				fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
			}

			if !quiet {
				summary := presenter.Summary()
				if summary != "" {
					fmt.Fprintln(os.Stderr, summary)
				}
			}

			if result.Err != nil {
				slog.Error("sync failed", "error", result.Err)
				return &exitError{code: 2}
			}
			if len(result.Failures) > 0 {
				for _, f := range result.Failures {
					slog.Warn("entry not synced", "entry", f.Entry, "error", f.Err)
				}
				return &exitError{code: 1} // partial failure
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: ~/.wslsync)")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false,
		"show what would be done without writing")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress all output except errors")
	rootCmd.Flags().BoolVar(&noTimes, "no-times", false,
		"don't preserve mtime on copied files")
	rootCmd.Flags().BoolVar(&verifyFlag, "verify", false,
		"verify checksums after copy (BLAKE3)")
	rootCmd.Flags().StringVar(&bwLimitStr, "bwlimit", "",
		"bandwidth limit (e.g. 100M, 1G)")
	rootCmd.Flags().StringVar(&logFile, "log", "",
		"write structured JSON log to FILE")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	rootCmd.AddCommand(validateCmd(&configPath))
	rootCmd.AddCommand(docsCmd)

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

// loadConfig resolves the config path and loads + validates the file.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = config.DefaultPath()
		if path == "" {
			return config.Config{}, errors.New("cannot resolve home directory; use --config")
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
