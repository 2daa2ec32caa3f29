// Command salesplot renders the sales scatter plot to SVG, PNG or PDF,
// and can serve it over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/benoitkugler/salesplot/chart"
	"github.com/benoitkugler/salesplot/config"
	"github.com/benoitkugler/salesplot/sales"
	"github.com/benoitkugler/salesplot/server"
	"github.com/benoitkugler/salesplot/svgdoc"
	"github.com/benoitkugler/salesplot/svgpdf"
	"github.com/benoitkugler/salesplot/svgraster"
)

type globals struct {
	Verbose bool `help:"Log debug messages." short:"v"`
}

// dataFlags select where records come from. Without any,
// the demo records are used.
type dataFlags struct {
	Data   string `help:"CSV file with country, sales and product columns." type:"existingfile" xor:"source"`
	DB     string `help:"SQLite database with a sales table." name:"db" type:"path" xor:"source"`
	Config string `help:"YAML chart configuration." type:"existingfile"`
}

func (f dataFlags) open() (sales.Source, func(), error) {
	switch {
	case f.Data != "":
		return sales.CSVFile{Path: f.Data}, func() {}, nil
	case f.DB != "":
		db, err := sales.OpenSQLite(f.DB)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	default:
		return sales.Demo(), func() {}, nil
	}
}

type renderCmd struct {
	dataFlags
	Format string `help:"Output format." enum:"svg,png,pdf" default:"svg"`
	Output string `help:"Output file, - for stdout." short:"o" default:"-"`
}

func (r *renderCmd) Run(g *globals) error {
	cfg, err := config.Load(r.Config)
	if err != nil {
		return err
	}
	source, closeSource, err := r.open()
	if err != nil {
		return err
	}
	defer closeSource()

	s, err := chart.Render(context.Background(), source, cfg)
	if err != nil {
		return err
	}
	return writeOutput(r.Output, func(w io.Writer) error { return encode(s, r.Format, w) })
}

type convertCmd struct {
	In  string `arg:"" help:"SVG file to convert." type:"existingfile"`
	Out string `arg:"" help:"Output file, .png or .pdf." type:"path"`
}

func (c *convertCmd) Run(g *globals) error {
	f, err := os.Open(c.In)
	if err != nil {
		return err
	}
	defer f.Close()
	s, err := svgdoc.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", c.In, err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Out)), ".")
	if format != "png" && format != "pdf" {
		return fmt.Errorf("unsupported output extension %q", filepath.Ext(c.Out))
	}
	return writeOutput(c.Out, func(w io.Writer) error { return encode(s, format, w) })
}

type seedCmd struct {
	DB   string `help:"SQLite database to write." name:"db" type:"path" required:""`
	Data string `help:"CSV file to import instead of the demo records." type:"existingfile"`
}

func (c *seedCmd) Run(g *globals) error {
	var source sales.Source = sales.Demo()
	if c.Data != "" {
		source = sales.CSVFile{Path: c.Data}
	}
	ctx := context.Background()
	records, err := source.Records(ctx)
	if err != nil {
		return err
	}
	if err := sales.Validate(records); err != nil {
		return err
	}
	db, err := sales.OpenSQLite(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Seed(ctx, records); err != nil {
		return err
	}
	slog.Info("database seeded", "path", c.DB, "records", len(records))
	return nil
}

type serveCmd struct {
	dataFlags
	Addr string `help:"Listen address." default:":8080"`
}

func (c *serveCmd) Run(g *globals) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	source, closeSource, err := c.open()
	if err != nil {
		return err
	}
	defer closeSource()

	app := server.New(&server.Handler{Source: source, Config: cfg})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		_ = app.Shutdown()
	}()
	slog.Info("listening", "addr", c.Addr)
	return app.Listen(c.Addr)
}

var cli struct {
	globals

	Render  renderCmd  `cmd:"" help:"Render the chart."`
	Convert convertCmd `cmd:"" help:"Convert an SVG file to PNG or PDF."`
	Seed    seedCmd    `cmd:"" help:"Write records into a SQLite database."`
	Serve   serveCmd   `cmd:"" help:"Serve the chart over HTTP."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("salesplot"),
		kong.Description("Scatter plot of sales per country."),
		kong.UsageOnError(),
	)
	setupLogger(cli.Verbose)
	ctx.FatalIfErrorf(ctx.Run(&cli.globals))
}

func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	chart.SetLogger(logger)
}

// encode writes s in the given format.
func encode(s *svgdoc.Surface, format string, w io.Writer) error {
	switch format {
	case "svg":
		return s.Encode(w)
	case "png":
		img, err := svgraster.Rasterize(s)
		if err != nil {
			return err
		}
		return svgraster.EncodePNG(w, img)
	case "pdf":
		return svgpdf.Render(s, w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// writeOutput calls write on stdout for "-", or on the created file.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Join(err, os.Remove(path))
	}
	return f.Close()
}
