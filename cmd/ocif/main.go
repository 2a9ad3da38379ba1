package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/ocif"
	"github.com/urfave/cli/v2"
)

const defaultDB = "ocif.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func methodFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "method",
		Aliases: []string{"m"},
		EnvVars: []string{"OCIF_VERSION"},
		Value:   ocif.DefaultMethod,
		Usage:   "encoding method, 5 to 8",
	}
}

func metricFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "metric",
		Value: metricSquared,
		Usage: "color distance metric, squared or lab",
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file, derived from the input if not set",
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "ocif"
	app.Usage = "OCIF terminal image utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"OCIF_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Print the encoding method and size of an image",
			ArgsUsage: "FILE",
			Action:    cmdInfo,
		},
		{
			Name:      "render",
			Usage:     "Rasterize an image to PNG or QOI",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "scale",
					Aliases: []string{"s"},
					Value:   "1",
					Usage:   "integer scale factor",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Usage:   "png or qoi, derived from the output file if not set",
				},
				outputFlag(),
			},
			Action: cmdRender,
		},
		{
			Name:      "recode",
			Usage:     "Re-encode an image with a different method",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{methodFlag(), metricFlag(), outputFlag()},
			Action:    cmdRecode,
		},
		{
			Name:      "convert",
			Usage:     "Convert a PNG, GIF, JPEG or QOI image",
			ArgsUsage: "IMAGE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "width",
					Usage: "width in cells",
				},
				&cli.IntFlag{
					Name:  "height",
					Usage: "height in cells",
				},
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce to this many colors first",
				},
				methodFlag(),
				metricFlag(),
				outputFlag(),
			},
			Action: cmdConvert,
		},
		{
			Name:      "view",
			Usage:     "Display an image in the terminal",
			ArgsUsage: "FILE",
			Action:    cmdView,
		},
		{
			Name:  "catalog",
			Usage: "Manage the image catalog",
			Subcommands: []*cli.Command{
				{
					Name:      "add",
					Usage:     "Add an image",
					ArgsUsage: "NAME FILE",
					Action:    catalogAdd,
				},
				{
					Name:      "get",
					Usage:     "Write an image to a file",
					ArgsUsage: "NAME FILE",
					Flags:     []cli.Flag{methodFlag(), metricFlag()},
					Action:    catalogGet,
				},
				{
					Name:   "list",
					Usage:  "List images",
					Action: catalogList,
				},
				{
					Name:      "rm",
					Usage:     "Remove an image",
					ArgsUsage: "NAME",
					Action:    catalogRemove,
				},
				{
					Name:      "scan",
					Usage:     "Add every image found in a directory",
					ArgsUsage: "DIRECTORY",
					Action:    catalogScan,
				},
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
