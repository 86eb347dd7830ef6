package render

import (
	"folio/pkg/layout"

	"github.com/fogleman/gg"
)

// Renderer draws laid-out pages to a raster context.
type Renderer struct {
	context  *gg.Context
	fontPath string
}

func NewRenderer(width, height int, fontPath string) *Renderer {
	return &Renderer{
		context:  gg.NewContext(width, height),
		fontPath: fontPath,
	}
}

// RenderPage draws one page: background, float boxes, then text runs.
func (r *Renderer) RenderPage(page *layout.Page) {
	dc := r.context
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, block := range page.Blocks {
		for _, f := range block.Floats {
			if f.Width <= 0 || f.Height <= 0 {
				continue
			}
			dc.SetRGBA(0.85, 0.85, 0.95, 1)
			dc.DrawRectangle(block.X+f.X, block.Y+f.Y, f.Width, f.Height)
			dc.Fill()
		}

		dc.SetRGB(0, 0, 0)
		for _, line := range block.Lines {
			for _, run := range line.Runs {
				fontSize := run.Style.GetFontSize()
				if r.fontPath != "" {
					// Falls back to gg's built-in face when loading fails
					dc.LoadFontFace(r.fontPath, fontSize)
				}
				baseline := block.Y + run.Y + fontSize
				dc.DrawString(run.Text, block.X+run.X, baseline)
			}
		}
	}
}

// SavePNG writes the current context to a PNG file.
func (r *Renderer) SavePNG(path string) error {
	return r.context.SavePNG(path)
}
