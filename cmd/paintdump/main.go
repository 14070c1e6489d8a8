// Command paintdump inspects and renders serialized paint op streams.
//
// Usage:
//
//	paintdump [-config file.toml] [-png out.png] [-dump] stream.bin
//	paintdump -sample stream.bin
//
// The stream is read with paint.DeserializeBuffer. -dump prints every
// canvas call playback makes; -png rasterizes the stream, decoding lazy
// images on the way.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/backends/raster"
	"github.com/gogpu/paint/decode"
	"github.com/gogpu/paint/recording"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		pngPath    = flag.String("png", "", "rasterize to this PNG file")
		dump       = flag.Bool("dump", false, "print canvas calls")
		sample     = flag.Bool("sample", false, "write a sample stream to the argument path")
		width      = flag.Int("width", 0, "override canvas width")
		height     = flag.Int("height", 0, "override canvas height")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	conf, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *width > 0 {
		conf.Width = *width
	}
	if *height > 0 {
		conf.Height = *height
	}
	if *verbose {
		conf.Verbose = true
	}
	if conf.Verbose {
		paint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	path := flag.Arg(0)
	if *sample {
		if err := writeSample(path); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := run(conf, path, *pngPath, *dump, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func writeSample(path string) error {
	b, err := sampleBuffer()
	if err != nil {
		return err
	}
	defer b.Release()
	data, err := paint.SerializeBuffer(b, paint.SerializeOptions{})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func run(conf config, path, pngPath string, dump bool, w io.Writer) error {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied input path
	if err != nil {
		return fmt.Errorf("paintdump: %w", err)
	}
	b, err := paint.DeserializeBuffer(data, paint.DeserializeOptions{})
	if err != nil {
		if errors.Is(err, paint.ErrCorruptStream) {
			return fmt.Errorf("paintdump: %s: %w", path, err)
		}
		return err
	}
	defer b.Release()

	fmt.Fprint(w, b)
	fmt.Fprintf(w, "bytes=%d slowpaths=%d discardable=%v nonaa=%v\n",
		b.BytesUsed(), b.NumSlowPaths(), b.HasDiscardableImages(), b.HasNonAAPaint())

	if dump {
		writeCalls(w, b, conf)
	}
	if pngPath != "" {
		return render(b, conf, pngPath)
	}
	return nil
}

func writeCalls(w io.Writer, b *paint.Buffer, conf config) {
	rc := recording.NewCanvas(conf.Width, conf.Height)
	b.Playback(rc)
	for i, call := range rc.Calls() {
		fmt.Fprintf(w, "%4d %s\n", i, call)
	}
}

func render(b *paint.Buffer, conf config, pngPath string) error {
	provider := decode.New(
		decode.WithCapacity(conf.DecodeCapacity),
		decode.WithMaxDecodeBytes(conf.MaxDecodeBytes),
	)
	var c paint.Canvas
	if conf.Backend == "raster" {
		c = raster.New(conf.Width, conf.Height, raster.WithBackground(conf.background()))
	} else {
		var err error
		if c, err = paint.NewCanvas(conf.Backend, conf.Width, conf.Height); err != nil {
			return err
		}
	}
	b.Playback(c, paint.WithImageProvider(provider))

	rc, ok := c.(*raster.Canvas)
	if !ok {
		return fmt.Errorf("paintdump: backend %q cannot write PNG", conf.Backend)
	}
	if err := rc.SavePNG(pngPath); err != nil {
		return err
	}
	paint.Logger().Info("paintdump: wrote png", "path", pngPath, "decodes", provider.Decodes())
	return nil
}
