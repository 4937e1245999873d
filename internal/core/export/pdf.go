package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/go-pdf/fpdf"
)

// Slice is one page's share of the tall bitmap.
type Slice struct {
	Y0, Y1 int     // source pixel rows [Y0, Y1)
	Height float64 // placed height on the page, in points
}

// Paginate cuts an imgW x imgH bitmap scaled to the content width of a
// pageW x pageH page into page-height slices. The last slice carries the
// remainder.
func Paginate(imgW, imgH int, pageW, pageH, margin float64) []Slice {
	contentW := pageW - 2*margin
	contentH := pageH - 2*margin
	if imgW <= 0 || imgH <= 0 || contentW <= 0 || contentH <= 0 {
		return nil
	}

	pxPerPt := float64(imgW) / contentW
	rowsPerPage := int(math.Floor(contentH * pxPerPt))
	if rowsPerPage < 1 {
		rowsPerPage = 1
	}

	var slices []Slice
	for y := 0; y < imgH; y += rowsPerPage {
		y1 := y + rowsPerPage
		if y1 > imgH {
			y1 = imgH
		}
		slices = append(slices, Slice{Y0: y, Y1: y1, Height: float64(y1-y) / pxPerPt})
	}
	return slices
}

// WritePDF lays img out across as many pages of pageFormat as it needs and
// writes the document to path.
func WritePDF(img *image.RGBA, path, pageFormat string, margin float64) error {
	pdf := fpdf.New("P", "pt", pageFormat, "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("page setup: %w", err)
	}

	pageW, pageH := pdf.GetPageSize()
	b := img.Bounds()
	slices := Paginate(b.Dx(), b.Dy(), pageW, pageH, margin)
	if len(slices) == 0 {
		return fmt.Errorf("nothing to paginate (%dx%d image)", b.Dx(), b.Dy())
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, s := range slices {
		sub := img.SubImage(image.Rect(b.Min.X, b.Min.Y+s.Y0, b.Max.X, b.Min.Y+s.Y1))
		var buf bytes.Buffer
		if err := png.Encode(&buf, sub); err != nil {
			return fmt.Errorf("encode page %d: %w", i+1, err)
		}

		name := fmt.Sprintf("page-%d", i+1)
		pdf.AddPage()
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.ImageOptions(name, margin, margin, pageW-2*margin, s.Height, false, opts, 0, "")
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("assemble page %d: %w", i+1, err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
