package service

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

//go:embed assets/logo.svg
var logoSVG []byte

// Card geometry in pixels.
const (
	PassWidth  = 700
	PassHeight = 1100

	passPadding     = 48
	passRadius      = 32
	dividerHeight   = 4
	headerCenterY   = 68
	headerDividerY  = 124
	footerDividerY  = 952
	logoSize        = 48
	photoRadius     = 160
	photoRing       = 8
	photoCenterY    = 468
	nameBaseline    = 732
	idBaseline      = 780
	footerBaseline1 = 1000
	footerBaseline2 = 1036

	nameSizeMax = 60
	nameSizeMin = 28

	jpegQuality = 98
)

var (
	colorWhite    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorBorder   = color.RGBA{0xe5, 0xe7, 0xeb, 0xff} // gray-200
	colorHeading  = color.RGBA{0x37, 0x41, 0x51, 0xff} // gray-700
	colorName     = color.RGBA{0x11, 0x18, 0x27, 0xff} // gray-900
	colorMuted    = color.RGBA{0x6b, 0x72, 0x80, 0xff} // gray-500
	colorRing     = color.RGBA{0x63, 0x66, 0xf1, 0xff} // indigo-500
	colorIDAccent = color.RGBA{0x4f, 0x46, 0xe5, 0xff} // indigo-600
)

// Branding is the organization printed on every pass.
type Branding struct {
	ShortName string // header, e.g. "GLOBAL ASSOC."
	FullName  string // footer, e.g. "Global Association"
}

// PassRenderer draws employee pass cards. It never modifies records.
type PassRenderer struct {
	branding Branding
	bold     *opentype.Font
	regular  *opentype.Font
}

// NewPassRenderer parses the embedded fonts.
func NewPassRenderer(branding Branding) (*PassRenderer, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	return &PassRenderer{branding: branding, bold: bold, regular: regular}, nil
}

// PassFilename is the download name of an exported pass.
func PassFilename(e domain.Employee) string {
	return e.EmployeeID + "-pass.jpg"
}

// Export renders e and encodes the card as a JPEG.
func (r *PassRenderer) Export(e domain.Employee) ([]byte, error) {
	img, err := r.Render(e)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Render draws the pass card for e.
func (r *PassRenderer) Render(e domain.Employee) (image.Image, error) {
	photo, err := DecodePhoto(e.Photo)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, PassWidth, PassHeight))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(colorWhite), image.Point{}, draw.Src)

	r.drawCard(dst)
	if err := r.drawLogo(dst); err != nil {
		return nil, err
	}
	drawPhoto(dst, photo, PassWidth/2, photoCenterY)

	faces, err := r.newFaces()
	if err != nil {
		return nil, err
	}
	defer faces.close()

	drawText(dst, faces.heading, r.branding.ShortName, passPadding+logoSize+16, headerCenterY+13, colorHeading)

	nameFace, name, err := r.fitName(e.Name, PassWidth-2*passPadding)
	if err != nil {
		return nil, err
	}
	defer nameFace.Close()
	drawCentered(dst, nameFace, name, nameBaseline, colorName)

	drawCentered(dst, faces.id, "Employee ID: "+e.EmployeeID, idBaseline, colorIDAccent)
	drawCentered(dst, faces.footer, "Registered on: "+e.RegistrationDate, footerBaseline1, colorMuted)
	drawCentered(dst, faces.footer, "This pass is the property of "+r.branding.FullName+".", footerBaseline2, colorMuted)

	return dst, nil
}

func (r *PassRenderer) drawCard(dst *image.RGBA) {
	w, h := float64(PassWidth), float64(PassHeight)
	fillShape(dst, colorBorder, func(a rasterx.Adder) {
		rasterx.AddRoundRect(0, 0, w, h, passRadius, passRadius, 0, rasterx.RoundGap, a)
	})
	fillShape(dst, colorWhite, func(a rasterx.Adder) {
		rasterx.AddRoundRect(2, 2, w-2, h-2, passRadius-2, passRadius-2, 0, rasterx.RoundGap, a)
	})

	divider := image.NewUniform(colorBorder)
	draw.Draw(dst, image.Rect(passPadding, headerDividerY, PassWidth-passPadding, headerDividerY+dividerHeight), divider, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(passPadding, footerDividerY, PassWidth-passPadding, footerDividerY+dividerHeight), divider, image.Point{}, draw.Src)
}

func (r *PassRenderer) drawLogo(dst *image.RGBA) error {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(logoSVG))
	if err != nil {
		return fmt.Errorf("parse logo: %w", err)
	}
	icon.SetTarget(passPadding, headerCenterY-logoSize/2, logoSize, logoSize)

	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	icon.Draw(dasher, 1.0)
	return nil
}

// drawPhoto draws photo cover-cropped into a circle with a coloured ring.
func drawPhoto(dst *image.RGBA, photo image.Image, cx, cy int) {
	fillShape(dst, colorRing, func(a rasterx.Adder) {
		rasterx.AddCircle(float64(cx), float64(cy), photoRadius, a)
	})

	inner := photoRadius - photoRing
	side := 2 * inner

	sb := photo.Bounds()
	crop := min(sb.Dx(), sb.Dy())
	src := image.Rect(0, 0, crop, crop).Add(image.Pt(
		sb.Min.X+(sb.Dx()-crop)/2,
		sb.Min.Y+(sb.Dy()-crop)/2,
	))

	scaled := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), photo, src, xdraw.Src, nil)

	mask := image.NewAlpha(image.Rect(0, 0, side, side))
	fillShape(mask, color.Alpha{A: 0xff}, func(a rasterx.Adder) {
		rasterx.AddCircle(float64(inner), float64(inner), float64(inner), a)
	})

	target := image.Rect(cx-inner, cy-inner, cx+inner, cy+inner)
	draw.DrawMask(dst, target, scaled, image.Point{}, mask, image.Point{}, draw.Over)
}

// fillShape rasterizes the path added by shape onto dst in colour c.
func fillShape(dst draw.Image, c color.Color, shape func(rasterx.Adder)) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.SetColor(c)
	shape(filler)
	filler.Draw()
}

type passFaces struct {
	heading, id, footer font.Face
}

func (f passFaces) close() {
	for _, face := range []font.Face{f.heading, f.id, f.footer} {
		if face != nil {
			face.Close()
		}
	}
}

// newFaces builds the fixed-size faces for one render. Faces keep glyph
// caches and must not be shared between goroutines.
func (r *PassRenderer) newFaces() (passFaces, error) {
	var (
		faces passFaces
		err   error
	)
	if faces.heading, err = newFace(r.bold, 36); err != nil {
		return faces, err
	}
	if faces.id, err = newFace(r.bold, 30); err != nil {
		faces.close()
		return passFaces{}, err
	}
	if faces.footer, err = newFace(r.regular, 24); err != nil {
		faces.close()
		return passFaces{}, err
	}
	return faces, nil
}

// fitName picks the largest name size that fits maxWidth. Names that do not
// fit at the minimum size are shortened with an ellipsis.
func (r *PassRenderer) fitName(name string, maxWidth int) (font.Face, string, error) {
	for size := float64(nameSizeMax); ; size -= 4 {
		face, err := newFace(r.bold, size)
		if err != nil {
			return nil, "", err
		}
		if font.MeasureString(face, name).Ceil() <= maxWidth {
			return face, name, nil
		}
		if size-4 < nameSizeMin {
			return face, truncateToWidth(face, name, maxWidth), nil
		}
		face.Close()
	}
}

func truncateToWidth(face font.Face, s string, maxWidth int) string {
	runes := []rune(s)
	for n := len(runes); n > 0; n-- {
		candidate := string(runes[:n]) + "..."
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			return candidate
		}
	}
	return "..."
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}

func drawText(dst draw.Image, face font.Face, s string, x, baseline int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

func drawCentered(dst draw.Image, face font.Face, s string, baseline int, c color.Color) {
	w := font.MeasureString(face, s).Ceil()
	drawText(dst, face, s, (dst.Bounds().Dx()-w)/2, baseline, c)
}
