// Command spinart renders spiral thumbnails, palette sheets and
// replays recorded motion traces onto a drawing surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/benoitkugler/spinart/spincanvas"
	"github.com/benoitkugler/spinart/spincolor"
	"github.com/benoitkugler/spinart/spingg"
	"github.com/benoitkugler/spinart/spinlog"
	"github.com/benoitkugler/spinart/spinpath"
	"github.com/benoitkugler/spinart/spinraster"
	"github.com/benoitkugler/spinart/spinspiral"
	"github.com/benoitkugler/spinart/spintrace"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"golang.org/x/time/rate"
	"honnef.co/go/curve"
)

const usage = `usage: spinart [-palette file.xml] [-v] <command> [flags]

commands:
  presets   list the available generators
  spiral    render one spiral thumbnail
  palette   render a sheet with every generator
  trace     replay a motion trace onto a canvas
`

func main() {
	var (
		paletteFile = flag.String("palette", "", "XML file with additional generators")
		verbose     = flag.Bool("v", false, "enable debug logging")
	)
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if *verbose {
		spinlog.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	gens := spincolor.Presets()
	if *paletteFile != "" {
		extra, err := spincolor.ReadPaletteFile(*paletteFile)
		if err != nil {
			log.Fatal(err)
		}
		gens = spincolor.Merge(gens, extra)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "presets":
		listPresets(gens)
	case "spiral":
		err = runSpiral(gens, args)
	case "palette":
		err = runPalette(ctx, gens, args)
	case "trace":
		err = runTrace(ctx, gens, args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func listPresets(gens []spincolor.Generator) {
	for _, g := range gens {
		fmt.Println(g)
	}
}

func lookup(gens []spincolor.Generator, title string) (spincolor.Generator, error) {
	g, ok := spincolor.Lookup(gens, title)
	if !ok {
		return g, fmt.Errorf("unknown generator %q", title)
	}
	return g, nil
}

func runSpiral(gens []spincolor.Generator, args []string) error {
	fs := flag.NewFlagSet("spiral", flag.ExitOnError)
	var (
		title   = fs.String("g", spincolor.Default().Title, "generator title")
		size    = fs.Float64("size", 100, "canvas side, in points")
		scale   = fs.Float64("scale", 1, "pixels per point")
		backend = fs.String("backend", "rasterx", "rasterizer: rasterx or gg")
		format  = fs.String("format", "png", "output format: png or svg")
		output  = fs.String("o", "spiral.png", "output file")
	)
	fs.Parse(args)

	g, err := lookup(gens, *title)
	if err != nil {
		return err
	}
	m := spinspiral.DefaultModel(g)
	m.CanvasSize = curve.Sz(*size, *size)

	start := time.Now()
	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer f.Close()

	switch *format {
	case "svg":
		err = spinspiral.RenderSVG(f, m, *scale, spinspiral.WarnErrorMode)
	case "png":
		var img *image.RGBA
		img, err = renderImage(m, *scale, *backend)
		if err == nil {
			err = png.Encode(f, img)
		}
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	report(*output, start)
	return nil
}

func renderImage(m spinspiral.Model, scale float64, backend string) (*image.RGBA, error) {
	var newDrawer func(*image.RGBA) spinpath.Drawer
	switch backend {
	case "rasterx":
		newDrawer = spinraster.NewDrawer
	case "gg":
		newDrawer = spingg.NewDrawer
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
	if err := m.Validate(scale); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rectangle{Max: m.ImageSize(scale)})
	err := spinspiral.Render(newDrawer(img), m, scale, spinspiral.WarnErrorMode)
	return img, err
}

func runPalette(ctx context.Context, gens []spincolor.Generator, args []string) error {
	fs := flag.NewFlagSet("palette", flag.ExitOnError)
	var (
		scale    = fs.Float64("scale", 1, "pixels per point")
		parallel = fs.Int("parallel", 4, "number of concurrent renderings")
		columns  = fs.Int("columns", 4, "thumbnails per row")
		cell     = fs.Int("cell", 128, "side of one cell, in pixels")
		output   = fs.String("o", "palette.png", "output file")
	)
	fs.Parse(args)

	start := time.Now()
	cache, err := spinspiral.NewCache(spinspiral.DefaultModel(spincolor.Default()), spinspiral.DefaultCacheSize, spinspiral.WarnErrorMode)
	if err != nil {
		return err
	}
	images, err := spinspiral.RenderPalette(ctx, cache, gens, *scale, *parallel)
	if err != nil {
		return err
	}
	sheet := spinspiral.Sheet(images, *columns, *cell)
	if err := writePNG(*output, sheet); err != nil {
		return err
	}
	report(*output, start)
	return nil
}

func runTrace(ctx context.Context, gens []spincolor.Generator, args []string) error {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	var (
		input  = fs.String("in", "", "CSV trace (a synthetic one is used if empty)")
		title  = fs.String("g", spincolor.Default().Title, "generator title")
		width  = fs.Int("width", 512, "canvas width")
		height = fs.Int("height", 512, "canvas height")
		brush  = fs.Float64("brush", spincanvas.DefaultBrush, "brush diameter")
		hz     = fs.Float64("hz", 60, "sample rate (0 to replay as fast as possible)")
		dir    = fs.String("o", ".", "output directory")
	)
	fs.Parse(args)

	g, err := lookup(gens, *title)
	if err != nil {
		return err
	}

	var samples []spintrace.Sample
	if *input == "" {
		center := curve.Pt(float64(*width)/2, float64(*height)/2)
		maxRadius := float64(min(*width, *height)) / 2
		samples = spintrace.Spin(center, maxRadius, 6, 120)
	} else {
		f, err := os.Open(*input)
		if err != nil {
			return err
		}
		samples, err = spintrace.Read(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("reading %s: %w", *input, err)
		}
	}

	s, err := spincanvas.New(*width, *height, spincanvas.WithGenerator(g), spincanvas.WithBrush(*brush))
	if err != nil {
		return err
	}
	var limiter *rate.Limiter
	if *hz > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Duration(float64(time.Second) / *hz)), 1)
	}

	start := time.Now()
	stats, err := spintrace.Replay(ctx, s, samples, limiter)
	if err != nil {
		return err
	}
	log.Printf("%d samples replayed: %d accepted, %d ignored, %d restarts, %d pauses",
		stats.Samples, stats.Accepted, stats.Ignored, stats.Restarts, stats.Pauses)

	file, err := s.SavePNG(*dir)
	if err != nil {
		return err
	}
	report(file, start)
	return nil
}

func writePNG(file string, img image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

func report(file string, start time.Time) {
	elapsed := durafmt.Parse(time.Since(start)).LimitFirstN(2).Format(shortUnits)
	if fi, err := os.Stat(file); err == nil {
		log.Printf("%s written (%s) in %s", filepath.Base(file), humanize.Bytes(uint64(fi.Size())), elapsed)
		return
	}
	log.Printf("%s written in %s", file, elapsed)
}
