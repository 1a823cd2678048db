package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/imagepoll"
	"github.com/bft-labs/imagepoll/internal/cliconfig"
	"github.com/bft-labs/imagepoll/pkg/log"
	"github.com/bft-labs/imagepoll/pkg/logbuffer"
)

const helpBanner = `
 █████ ██████   ██████   █████████    ███████     ██████████   ██████   █████       █████
░░███ ░░██████ ██████   ███░░░░░███ ███░░░░░███   ░░███░░░░███ ░░██████ ░░███       ░░███
 ░███  ░███░█████░███  ░███    ░███░███    ░███    ░███   ░░███ ░███░███ ░███        ░███
 ░███  ░███░░███ ░███  ░███████████░███    ░███    ░███    ░███ ░███░░███░███        ░███
 ░███  ░███ ░░░  ░███  ░███░░░░░███░███    ░███    ░███    ░███ ░███ ░░██████        ░███
 ░███  ░███      ░███  ░███    ░███░░███   ███     ░███    ███  ░███  ░░█████  █████ ░███
 █████ █████     █████ █████   █████░░░███████░    ██████████   █████  ░░█████░░░░░  █████
`

const helpDescription = `
Drive an Image over a memory-mapped log buffer and print every fragment it delivers.

Highlights:
  - Creates or opens a three-term mapped log file.
  - Polls the log with a controlled handler, logging position and disposition.
  - Configure via file, env, or flags; the config file is watched for changes.
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  imagepoll --log-path /tmp/demo.ipl --create --once
  imagepoll --config $HOME/.imagepoll/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zlog := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "imagepoll",
		Short:   "Drive an Image over a memory-mapped log buffer and print every fragment it delivers",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

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
			cliconfig.SetVerbose(cfg.Verbose)
			zlog = cliconfig.Logger()

			zlog.Info().Interface("config", cfg).Msg("configuration")

			mappedLog, err := openOrCreateLog(cfg)
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			if closer, ok := mappedLog.(interface{ Close() error }); ok {
				defer closer.Close()
			}

			correlationID := uuid.New()
			zlog.Debug().Str("correlation_id", correlationID.String()).Msg("registered image")

			logger := log.NewZerologAdapterWithLogger(zlog)
			img, err := imagepoll.New(mappedLog, imagepoll.Identity{
				SessionID:            int32(cfg.SessionID),
				SubscriberPositionID: int32(cfg.StreamID),
				SourceIdentity:       fmt.Sprintf("ipc:%s", cfg.LogPath),
			}, 0, imagepoll.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("create image: %w", err)
			}
			defer img.Close()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if cfgFile != "" {
				watcher := cliconfig.NewConfigWatcher(cfgFile, &cfg, changed)
				go func() {
					if err := watcher.Run(ctx, func() {
						cliconfig.SetVerbose(cfg.Verbose)
						zlog.Info().Msg("configuration reloaded")
					}); err != nil {
						zlog.Warn().Err(err).Msg("config watcher stopped")
					}
				}()
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			return runPollLoop(ctx, sigCh, img, &cfg, zlog)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.imagepoll/config.toml)")
	root.Flags().StringVar(&cfg.LogPath, "log-path", cfg.LogPath, "path to the mapped log file")
	root.Flags().BoolVar(&cfg.Create, "create", cfg.Create, "create the log file if it does not exist")
	root.Flags().IntVar(&cfg.TermLength, "term-length", cfg.TermLength, "term buffer length in bytes (power of two)")
	root.Flags().IntVar(&cfg.InitialTermID, "initial-term-id", cfg.InitialTermID, "initial term id for a new log")
	root.Flags().IntVar(&cfg.SessionID, "session-id", cfg.SessionID, "publication session id")
	root.Flags().IntVar(&cfg.StreamID, "stream-id", cfg.StreamID, "publication stream id")
	root.Flags().IntVar(&cfg.FragmentLimit, "fragment-limit", cfg.FragmentLimit, "maximum fragments per poll")
	root.Flags().DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "poll interval when idle")
	root.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "exit after the first poll that delivers no fragments")
	root.Flags().BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")

	if err := root.Execute(); err != nil {
		zlog.Error().Err(err).Msg("imagepoll")
		os.Exit(1)
	}
}

func openOrCreateLog(cfg cliconfig.Config) (imagepoll.MappedLog, error) {
	if cfg.Create && !cliconfig.FileExists(cfg.LogPath) {
		return logbuffer.CreateMmapLog(cfg.LogPath, int32(cfg.TermLength), int32(cfg.InitialTermID))
	}
	return logbuffer.OpenMmapLog(cfg.LogPath)
}
