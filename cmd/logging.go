package cmd

import (
	"os"

	"github.com/df07/go-tile-tracer/pkg/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

var logger = log.New("tracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// Setup runs before any command: it configures verbosity and loads the
// env file so that flag environment variables can come from it.
func Setup(ctx *cli.Context) error {
	setupLogging(ctx)

	envFile := ctx.GlobalString("env-file")
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		if os.IsNotExist(err) {
			logger.Debugf("no env file at %s", envFile)
			return nil
		}
		return cli.NewExitError("failed to load env file "+envFile+": "+err.Error(), 1)
	}
	logger.Infof("loaded environment from %s", envFile)
	return nil
}
