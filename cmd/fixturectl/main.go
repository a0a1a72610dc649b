package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigit/uniconnect-fixtures/internal/commands"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.NewApp().RunContext(ctx, os.Args); err != nil {
		code := commands.ExitCode(err)
		// Validation failures were already printed by the command
		if code != commands.ExitValidationFailed {
			logger.Error().Err(err).Msg("fixturectl failed")
		} else {
			logger.Warn().Msg(err.Error())
		}
		stop()
		os.Exit(code)
	}
}
