package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/imagepoll"
	"github.com/bft-labs/imagepoll/internal/cliconfig"
)

// runPollLoop drives img with a controlled poll on every tick, logging each
// delivered fragment's disposition and position, until canceled, signaled,
// or (in --once mode) the log runs dry.
func runPollLoop(ctx context.Context, sigCh chan os.Signal, img *imagepoll.Image, cfg *cliconfig.Config, zlog zerolog.Logger) error {
	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	handler := func(payload []byte, header imagepoll.HeaderSnapshot) imagepoll.Disposition {
		pos, _ := img.Position()
		disposition := imagepoll.ContinueDisposition
		zlog.Info().
			Int("frame_type", int(header.Type)).
			Int("payload_len", len(payload)).
			Int64("position", pos).
			Str("disposition", disposition.String()).
			Msg("fragment delivered")
		return disposition
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-sigCh:
			zlog.Info().Str("signal", sig.String()).Msg("received signal, stopping")
			return nil
		case <-ticker.C:
			n := img.ControlledPoll(cfg.FragmentLimit, handler)
			if cfg.Once && n == 0 {
				return nil
			}
		}
	}
}
