package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/richard-senior/dxfshapes/internal/config"
	"github.com/richard-senior/dxfshapes/internal/logger"
	"github.com/richard-senior/dxfshapes/internal/processor"
	"github.com/richard-senior/dxfshapes/pkg/catalog"
	"github.com/richard-senior/dxfshapes/pkg/drawing"
	"github.com/richard-senior/dxfshapes/pkg/inspect"
	flag "github.com/spf13/pflag"
)

const usage = `Usage:
    %[1]s sample   [options]              two rectangles and two circles
    %[1]s notched  [options]              lap joint board with four notches
    %[1]s rect     [options]              a single rectangle
    %[1]s circle   [options]              a circle from center, diameter or three points
    %[1]s batch    [--input file]         run JSON tool requests from a file or stdin
    %[1]s inspect  <file.dxf>             list the geometry in a DXF file
    %[1]s catalog                         list drawings recorded in the catalog
Run '%[1]s <command> --help' for the options of a command.
`

func main() {
	cfg := config.Config
	logger.SetShowDateTime(cfg.ShowTime)
	logger.SetLogFile(cfg.LogFile)
	// stdout is for results such as batch JSON
	logger.SetConsoleWriter(os.Stderr)
	if err := logger.SetLogOutput(cfg.LogOutputRune('c')); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		os.Exit(2)
	}

	var err error
	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "sample":
		err = runSample(args)
	case "notched":
		err = runNotched(args)
	case "rect":
		err = runRect(args)
	case "circle":
		err = runCircle(args)
	case "batch":
		err = runBatch(args)
	case "inspect":
		err = runInspect(args)
	case "catalog":
		err = runCatalog(args)
	case "help", "-h", "--help":
		fmt.Fprintf(os.Stdout, usage, os.Args[0])
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		os.Exit(2)
	}
	if err != nil {
		logger.Error(cmd, "failed:", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// drawingFlags are shared by the commands that write a drawing
type drawingFlags struct {
	output  string
	version string
	units   string
	layer   string
}

func newFlagSet(name string, defOutput string) (*flag.FlagSet, *drawingFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetInterspersed(true)
	df := &drawingFlags{}
	fs.StringVarP(&df.output, "output", "o", defOutput, "Output file, .dxf is appended if missing")
	fs.StringVar(&df.version, "version", config.Config.Version, "DXF version, e.g. R12, R2000, R2010")
	fs.StringVar(&df.units, "units", config.Config.Units, "Drawing units: mm, cm, m, in, ft or yd")
	fs.StringVar(&df.layer, "layer", drawing.LayerCut, "Layer for the shape")
	return fs, df
}

func (df *drawingFlags) newDrawing() (*drawing.Drawing, error) {
	return drawing.New(df.output, df.version, df.units, true)
}

// save writes d, records it in the catalog when one is configured and prints the path
func save(d *drawing.Drawing) error {
	path, err := d.Save()
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d entities on %d layers\n", path, len(d.Entities()), len(d.Layers()))

	if config.Config.CatalogPath == "" {
		return nil
	}
	c, err := catalog.Open(config.Config.CatalogPath)
	if err != nil {
		return err
	}
	defer c.Close()
	_, err = c.Record(context.Background(), catalog.Entry{
		Path:     path,
		Version:  d.Version().Name,
		Units:    d.Units(),
		Layers:   len(d.Layers()),
		Entities: len(d.Entities()),
	})
	return err
}

func runSample(args []string) error {
	fs, df := newFlagSet("sample", "sample_shapes.dxf")
	if err := fs.Parse(args); err != nil {
		return err
	}
	d, err := df.newDrawing()
	if err != nil {
		return err
	}
	shapes, err := drawing.SampleShapes()
	if err != nil {
		return err
	}
	if err := d.AddShapes(shapes...); err != nil {
		return err
	}
	return save(d)
}

func runNotched(args []string) error {
	fs, df := newFlagSet("notched", "")
	o := drawing.DefaultLapJointOptions()
	fs.Float64Var(&o.Origin.X, "x", 0, "Board origin x")
	fs.Float64Var(&o.Origin.Y, "y", 0, "Board origin y")
	fs.Float64Var(&o.Length, "length", o.Length, "Board length")
	fs.Float64Var(&o.Width, "width", o.Width, "Board width")
	fs.Float64Var(&o.NotchWidth, "notch-width", o.NotchWidth, "Width of each notch")
	fs.Float64VarP(&o.DepthFraction, "depth", "d", o.DepthFraction, "Notch depth as a fraction of the board width")
	overlay := fs.Bool("overlay", false, "Draw the board and notches as separate rectangles (default when depth >= 0.5)")
	noAnnotate := fs.Bool("no-annotate", false, "Leave out reference lines and labels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	o.Overlay = *overlay || o.DepthFraction >= 0.5
	o.Annotate = !*noAnnotate
	if df.output == "" {
		df.output = fmt.Sprintf("notched_rectangle_%d_percent.dxf", int(o.DepthFraction*100+0.5))
	}

	d, err := df.newDrawing()
	if err != nil {
		return err
	}
	if err := drawing.AddLapJointBoard(d, o); err != nil {
		return err
	}
	return save(d)
}

func runRect(args []string) error {
	fs, df := newFlagSet("rect", "rectangle.dxf")
	x := fs.Float64("x", 0, "Bottom-left x, or center x with --center")
	y := fs.Float64("y", 0, "Bottom-left y, or center y with --center")
	w := fs.Float64("width", 100, "Width")
	h := fs.Float64("height", 50, "Height")
	center := fs.Bool("center", false, "Treat x,y as the center")
	corners := fs.Float64Slice("corners", nil, "Two opposite corners x1,y1,x2,y2 instead of x,y,width,height")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var r drawing.Rectangle
	var err error
	switch {
	case len(*corners) > 0:
		if len(*corners) != 4 {
			return fmt.Errorf("--corners needs 4 numbers, got %d", len(*corners))
		}
		c := *corners
		r, err = drawing.RectangleFromCorners(c[0], c[1], c[2], c[3], df.layer)
	case *center:
		r, err = drawing.RectangleFromCenter(*x, *y, *w, *h, df.layer)
	default:
		r, err = drawing.NewRectangle(*x, *y, *w, *h, df.layer)
	}
	if err != nil {
		return err
	}

	d, err := df.newDrawing()
	if err != nil {
		return err
	}
	if err := d.AddShape(r); err != nil {
		return err
	}
	return save(d)
}

func runCircle(args []string) error {
	fs, df := newFlagSet("circle", "circle.dxf")
	cx := fs.Float64("cx", 0, "Center x")
	cy := fs.Float64("cy", 0, "Center y")
	radius := fs.Float64P("radius", "r", 0, "Radius")
	diameter := fs.Float64("diameter", 0, "Diameter, instead of radius")
	points := fs.Float64Slice("points", nil, "Three points x1,y1,x2,y2,x3,y3 on the circumference")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var c drawing.Circle
	var err error
	switch {
	case len(*points) > 0:
		if len(*points) != 6 {
			return fmt.Errorf("--points needs 6 numbers, got %d", len(*points))
		}
		p := *points
		c, err = drawing.CircleFromThreePoints(p[0], p[1], p[2], p[3], p[4], p[5], df.layer)
	case fs.Changed("diameter"):
		c, err = drawing.CircleFromDiameter(*cx, *cy, *diameter, df.layer)
	default:
		c, err = drawing.NewCircle(*cx, *cy, *radius, df.layer)
	}
	if err != nil {
		return err
	}
	fmt.Printf("circle center (%g, %g) radius %g\n", c.Center.X, c.Center.Y, c.Radius)

	d, err := df.newDrawing()
	if err != nil {
		return err
	}
	if err := d.AddShape(c); err != nil {
		return err
	}
	return save(d)
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	input := fs.StringP("input", "i", "", "Request file, stdin when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var data []byte
	var err error
	if *input != "" {
		data, err = os.ReadFile(*input)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}
	out, err := processor.ProcessRequest(data)
	if len(out) > 0 {
		fmt.Println(string(out))
	}
	return err
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print the summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("inspect needs exactly one file")
	}
	summary, err := inspect.File(fs.Arg(0))
	if err != nil {
		return err
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	fmt.Print(summary)
	return nil
}

func runCatalog(args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	path := fs.String("db", config.Config.CatalogPath, "Catalog database")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("no catalog configured, set DXFSHAPES_CATALOG or --db")
	}
	c, err := catalog.Open(*path)
	if err != nil {
		return err
	}
	defer c.Close()

	entries, err := c.List(context.Background())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SAVED\tVERSION\tUNITS\tLAYERS\tENTITIES\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", e.SavedAt.Format(time.DateTime), e.Version, e.Units, e.Layers, e.Entities, e.Path)
	}
	return tw.Flush()
}
