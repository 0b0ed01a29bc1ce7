package main

import (
	"os"

	"github.com/df07/go-tile-tracer/cmd"
	"github.com/df07/go-tile-tracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("main")

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-tile-tracer"
	app.Usage = "render scenes with a tiled, parallel path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "env-file",
			Value: ".env",
			Usage: "load environment variables from this file if it exists",
		},
	}
	app.Before = cmd.Setup
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render one of the built-in scenes tile by tile on a pool of workers and save
the tone-mapped frame. The frame can optionally be thumbnailed and published
to an S3 compatible bucket.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.Render,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
