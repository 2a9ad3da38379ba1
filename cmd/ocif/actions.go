package main

import (
	"fmt"
	"image"
	_ "image/gif"  // decoder
	_ "image/jpeg" // decoder
	_ "image/png"  // decoder
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/ocif"
	"github.com/bodgit/ocif/catalog"
	"github.com/bodgit/ocif/font"
	"github.com/bodgit/ocif/palette"
	"github.com/bodgit/ocif/render"
	"github.com/bodgit/ocif/view"
	"github.com/urfave/cli/v2"
	_ "github.com/xfmoulet/qoi" // decoder
)

func requireArgs(c *cli.Context, n int) {
	if c.NArg() < n {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func outputFile(c *cli.Context, input, ext string) string {
	if o := c.String("output"); o != "" {
		return o
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

func readImage(file string) (*ocif.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ocif.Decode(f)
}

const (
	metricSquared = "squared"
	metricLab     = "lab"
)

func encodeOptions(c *cli.Context) (*ocif.EncodeOptions, error) {
	o := &ocif.EncodeOptions{
		Method: c.Int("method"),
	}
	switch strings.ToLower(c.String("metric")) {
	case metricSquared, "":
		o.Metric = palette.SquaredRGB
	case metricLab:
		o.Metric = palette.Lab
	default:
		return nil, fmt.Errorf("unknown metric \"%s\"", c.String("metric"))
	}
	return o, nil
}

func writeImage(c *cli.Context, file string, m *ocif.Image) error {
	o, err := encodeOptions(c)
	if err != nil {
		return err
	}
	b, err := ocif.Marshal(m, o)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(file, b, 0644)
}

func cmdInfo(c *cli.Context) error {
	requireArgs(c, 1)

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	config, err := ocif.DecodeConfig(f)
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Printf("method=%d width=%d height=%d\n", config.Method, config.Width, config.Height)
	return nil
}

func cmdRender(c *cli.Context) error {
	requireArgs(c, 1)

	scale, err := render.ParseScale(c.String("scale"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	m, err := readImage(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	format := c.String("format")
	ext := format
	if ext == "" {
		ext = render.FormatPNG
	}
	out := outputFile(c, c.Args().First(), "."+strings.ToLower(ext))
	if format == "" {
		format = render.FormatFromFilename(out)
	}

	pm, err := render.New(font.Default()).Render(m, scale)
	if err != nil {
		return cli.Exit(err, 1)
	}

	f, err := os.Create(out)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	if err := render.Encode(f, pm, format); err != nil {
		return cli.Exit(err, 1)
	}

	newLogger(c).Printf("Wrote %s (%dx%d)\n", out, pm.Bounds().Dx(), pm.Bounds().Dy())
	return nil
}

func cmdRecode(c *cli.Context) error {
	requireArgs(c, 1)

	m, err := readImage(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	out := outputFile(c, c.Args().First(), catalog.Extension)
	if err := writeImage(c, out, m); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func cmdConvert(c *cli.Context) error {
	requireArgs(c, 1)

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return cli.Exit(err, 1)
	}
	newLogger(c).Printf("Decoded %s image (%dx%d)\n", format, src.Bounds().Dx(), src.Bounds().Dy())

	m := ocif.FromImage(src, &ocif.ConvertOptions{
		Width:  c.Int("width"),
		Height: c.Int("height"),
		Colors: c.Int("colors"),
	})

	out := outputFile(c, c.Args().First(), catalog.Extension)
	if err := writeImage(c, out, m); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func cmdView(c *cli.Context) error {
	requireArgs(c, 1)

	m, err := readImage(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := view.Run(m); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func withCatalog(c *cli.Context, fn func(*catalog.Catalog) error) error {
	db, err := catalog.Open(c.String("db"), newLogger(c))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	if err := fn(db); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func catalogAdd(c *cli.Context) error {
	requireArgs(c, 2)

	return withCatalog(c, func(db *catalog.Catalog) error {
		m, err := readImage(c.Args().Get(1))
		if err != nil {
			return err
		}
		return db.Add(c.Args().First(), m)
	})
}

func catalogGet(c *cli.Context) error {
	requireArgs(c, 2)

	return withCatalog(c, func(db *catalog.Catalog) error {
		m, err := db.Get(c.Args().First())
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("no image named \"%s\"", c.Args().First())
		}
		return writeImage(c, c.Args().Get(1), m)
	})
}

func catalogList(c *cli.Context) error {
	return withCatalog(c, func(db *catalog.Catalog) error {
		entries, err := db.List()
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%s\t%dx%d\t%s\n", e.Name, e.Width, e.Height, e.SHA1)
		}
		return nil
	})
}

func catalogRemove(c *cli.Context) error {
	requireArgs(c, 1)

	return withCatalog(c, func(db *catalog.Catalog) error {
		return db.Delete(c.Args().First())
	})
}

func catalogScan(c *cli.Context) error {
	requireArgs(c, 1)

	return withCatalog(c, func(db *catalog.Catalog) error {
		return db.Scan(c.Args().First())
	})
}
