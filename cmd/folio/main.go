package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"folio/pkg/dom"
	"folio/pkg/hangindent"
	"folio/pkg/layout"
	"folio/pkg/render"
	"folio/pkg/text"
)

func main() {
	var (
		configPath = pflag.String("config", "", "YAML page/font configuration file")
		pageWidth  = pflag.Float64("width", 0, "page width in pixels (overrides config)")
		pageHeight = pflag.Float64("height", 0, "page height in pixels (overrides config)")
		fontPath   = pflag.String("font", "", "font file for measurement and rendering (overrides config)")
		outPrefix  = pflag.String("out", "", "write one PNG per page: <out>-<n>.png")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input.html>\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *pageWidth > 0 {
		cfg.Page.Width = *pageWidth
	}
	if *pageHeight > 0 {
		cfg.Page.Height = *pageHeight
	}
	if *fontPath != "" {
		cfg.Font.Path = *fontPath
	}

	htmlContent, err := os.ReadFile(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	doc, err := dom.Parse(string(htmlContent))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	// Base font size applies through inheritance unless the document says
	// otherwise; prepend so document rules win.
	doc.Stylesheets = append(
		[]string{fmt.Sprintf("body { font-size: %gpx }", cfg.Font.Size)},
		doc.Stylesheets...)

	engine := layout.NewEngine(cfg.Page.Width, cfg.Page.Height,
		text.NewGlyphMeasurer(cfg.Font.Path))
	unregister := hangindent.Register(engine)
	defer unregister()

	pages := engine.LayoutDocument(doc)

	for _, page := range pages {
		for _, block := range page.Blocks {
			ctx := engine.Context(block.Node)
			if ctx == nil || ctx.Diag == nil || !ctx.Diag.Applied {
				continue
			}
			fmt.Printf("hanging indent on <%s> page %d: width=%.1fpx lines=%d\n",
				block.Node.TagName, page.Index+1, ctx.Diag.Width, ctx.Diag.LineCount)
		}
	}

	if *outPrefix != "" {
		for _, page := range pages {
			r := render.NewRenderer(int(cfg.Page.Width), int(cfg.Page.Height), cfg.Font.Path)
			r.RenderPage(page)
			out := fmt.Sprintf("%s-%d.png", *outPrefix, page.Index+1)
			if err := r.SavePNG(out); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving PNG: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("wrote %s\n", out)
		}
	}
	fmt.Printf("laid out %d page(s)\n", len(pages))
}
