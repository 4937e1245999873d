package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"unicode"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrMissingGlyphs means the font cannot draw some characters of the card.
var ErrMissingGlyphs = errors.New("font has no glyphs for some characters (set export.font_path to a font that covers them)")

// cjkFontPaths are system fonts tried in order when no font is configured.
// Go Mono is the last resort and only covers Latin text.
var cjkFontPaths = []string{
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/STHeiti Medium.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/google-noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-zenhei.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	`C:\Windows\Fonts\msjh.ttc`,
	`C:\Windows\Fonts\msyh.ttc`,
}

const (
	basePointSize = 13.0
	paddingPx     = 32
)

var (
	inkColor   = color.RGBA{0x11, 0x18, 0x27, 0xff}
	labelColor = color.RGBA{0x4b, 0x55, 0x63, 0xff}
	ruleColor  = color.RGBA{0xd1, 0xd5, 0xdb, 0xff}
)

// Rasterizer draws text onto a white bitmap of fixed width.
type Rasterizer struct {
	widthPx int
	scale   int
	font    *opentype.Font
	faces   map[int]font.Face
}

// NewRasterizer returns a rasterizer producing bitmaps widthPx*scale wide.
// fontPath selects a TrueType or OpenType font or collection. Empty means
// the first installed CJK system font, falling back to Go Mono.
func NewRasterizer(widthPx, scale int, fontPath string) (*Rasterizer, error) {
	if widthPx <= 0 || scale <= 0 {
		return nil, fmt.Errorf("invalid raster size %dpx x%d", widthPx, scale)
	}

	var f *opentype.Font
	if fontPath != "" {
		b, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		if f, err = parseFont(b); err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
	} else {
		f = systemCJKFont()
	}

	return &Rasterizer{widthPx: widthPx, scale: scale, font: f, faces: map[int]font.Face{}}, nil
}

// parseFont accepts a single font or the first font of a collection.
func parseFont(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err == nil {
		return f, nil
	}
	c, cerr := opentype.ParseCollection(data)
	if cerr != nil || c.NumFonts() == 0 {
		return nil, err
	}
	return c.Font(0)
}

func systemCJKFont() *opentype.Font {
	for _, path := range cjkFontPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := parseFont(data)
		if err != nil {
			continue
		}
		if len(missingGlyphs(f, "日誌")) == 0 {
			return f
		}
	}
	f, _ := opentype.Parse(gomono.TTF)
	return f
}

// missingGlyphs lists the distinct printable runes of text that f cannot
// draw.
func missingGlyphs(f *opentype.Font, text string) []rune {
	var buf sfnt.Buffer
	seen := map[rune]bool{}
	var missing []rune
	for _, c := range text {
		if seen[c] || unicode.IsSpace(c) || unicode.IsControl(c) {
			continue
		}
		seen[c] = true
		if idx, err := f.GlyphIndex(&buf, c); err != nil || idx == 0 {
			missing = append(missing, c)
		}
	}
	return missing
}

// Width returns the bitmap width in pixels.
func (r *Rasterizer) Width() int {
	return r.widthPx * r.scale
}

// face returns the face for a heading level, 0 being body text.
func (r *Rasterizer) face(level int) (font.Face, error) {
	if f, ok := r.faces[level]; ok {
		return f, nil
	}
	size := basePointSize
	switch level {
	case 1:
		size *= 1.6
	case 2:
		size *= 1.3
	case 3:
		size *= 1.1
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size * float64(r.scale),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	r.faces[level] = f
	return f, nil
}

type line struct {
	text  string
	level int
	label int // byte length of a leading "label:" to draw muted
}

func headingLevel(s string) (int, string) {
	for level, prefix := range []string{"# ", "## ", "### "} {
		if strings.HasPrefix(s, prefix) {
			return level + 1, strings.TrimPrefix(s, prefix)
		}
	}
	return 0, s
}

// layout splits text into drawable lines, wrapping each to the number of
// cells that fit the body face.
func (r *Rasterizer) layout(text string) ([]line, error) {
	var out []line
	for _, raw := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		level, body := headingLevel(raw)
		face, err := r.face(level)
		if err != nil {
			return nil, err
		}
		cols := r.columns(face)

		wrapped := wrap.String(wordwrap.String(body, cols), cols)
		for i, part := range strings.Split(wrapped, "\n") {
			l := line{text: part, level: level}
			if i == 0 && level == 0 {
				if idx := strings.Index(part, ": "); idx > 0 {
					l.label = idx + 1
				}
			}
			out = append(out, l)
		}
	}
	return out, nil
}

// columns is how many single-width cells fit between the paddings.
func (r *Rasterizer) columns(face font.Face) int {
	adv, ok := face.GlyphAdvance('0')
	if !ok || adv <= 0 {
		return 80
	}
	usable := r.Width() - 2*paddingPx*r.scale
	cols := usable / adv.Ceil()
	if cols < 10 {
		cols = 10
	}
	return cols
}

// Rasterize draws text top to bottom and returns the tall bitmap. Lines
// starting with "# ", "## " and "### " are drawn as headings. Text the font
// cannot draw fails with ErrMissingGlyphs rather than printing boxes.
func (r *Rasterizer) Rasterize(text string) (*image.RGBA, error) {
	if missing := missingGlyphs(r.font, text); len(missing) > 0 {
		if len(missing) > 8 {
			missing = missing[:8]
		}
		return nil, fmt.Errorf("%w: %q", ErrMissingGlyphs, string(missing))
	}

	lines, err := r.layout(text)
	if err != nil {
		return nil, err
	}

	pad := paddingPx * r.scale
	height := 2 * pad
	for _, l := range lines {
		f, _ := r.face(l.level)
		height += lineHeight(f, l.level)
	}

	img := image.NewRGBA(image.Rect(0, 0, r.Width(), height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	y := pad
	for _, l := range lines {
		f, _ := r.face(l.level)
		h := lineHeight(f, l.level)
		baseline := y + f.Metrics().Ascent.Ceil()
		if l.level > 0 {
			baseline += h - f.Metrics().Height.Ceil()
		}

		d := &font.Drawer{Dst: img, Face: f, Dot: fixed.P(pad, baseline)}
		text := l.text
		if l.label > 0 && l.label <= len(text) {
			d.Src = image.NewUniform(labelColor)
			d.DrawString(text[:l.label])
			text = text[l.label:]
		}
		d.Src = image.NewUniform(inkColor)
		d.DrawString(text)

		if l.level > 0 && l.level < 3 {
			// Emphasize headings with a second pass and an underline
			d.Dot = fixed.P(pad+r.scale/2+1, baseline)
			d.DrawString(l.text)
			rule := image.Rect(pad, baseline+r.scale*4, r.Width()-pad, baseline+r.scale*4+r.scale)
			draw.Draw(img, rule, image.NewUniform(ruleColor), image.Point{}, draw.Src)
		}
		y += h
	}

	return img, nil
}

func lineHeight(f font.Face, level int) int {
	h := f.Metrics().Height.Ceil()
	if level > 0 {
		// Breathing room above headings
		h += h / 2
	}
	return h
}
