package roi

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"
)

// ErrCellMask is returned when a cell segmentation TIFF cannot be
// decoded.
var ErrCellMask = errors.New("roi: cell mask import failed")

// CellSegmentation is an externally produced cell mask: a grayscale
// image in which every cell carries a distinct non-zero label value
// and zero is background.
type CellSegmentation struct {
	NumCells   int
	Mask       *Mask
	Boundaries MultiPolygon
}

// ImportCellMask decodes a grayscale TIFF cell mask, counts the
// distinct cell labels and vectorizes the combined foreground into
// polygon boundaries at unit pixel size.
func ImportCellMask(r io.Reader) (*CellSegmentation, error) {
	img, err := tiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCellMask, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	m := NewMask(w, h)
	labels := make(map[uint32]struct{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := grayValue(img, bounds.Min.X+x, bounds.Min.Y+y)
			if v == 0 {
				continue
			}
			m.Set(x, y, true)
			labels[v] = struct{}{}
		}
	}

	boundaries, err := VectorizeMask(m, 1)
	if err != nil {
		return nil, fmt.Errorf("vectorize cell boundaries: %w", err)
	}

	Logger().Info("cell mask imported",
		"cells", len(labels),
		"width", w,
		"height", h,
		"foreground", m.Count())
	return &CellSegmentation{
		NumCells:   len(labels),
		Mask:       m,
		Boundaries: boundaries,
	}, nil
}

// grayValue reads a pixel as a 16-bit gray level, whatever the
// decoded image type turned out to be.
func grayValue(img image.Image, x, y int) uint32 {
	switch im := img.(type) {
	case *image.Gray:
		return uint32(im.GrayAt(x, y).Y)
	case *image.Gray16:
		return uint32(im.Gray16At(x, y).Y)
	default:
		return uint32(color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y)
	}
}

// LabelMask pairs an annotation label with the member pixels to
// export for it.
type LabelMask struct {
	Label  string
	Pixels []Pixel
}

// BuildMaskImage renders member pixels into an 8-bit grayscale image
// covering rect. Members are 255, everything else 0; pixels outside
// rect are dropped.
func BuildMaskImage(pixels []Pixel, rect PixelRect) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, rect.Width(), rect.Height()))
	for _, p := range pixels {
		if p.X < rect.From.X || p.X >= rect.To.X || p.Y < rect.From.Y || p.Y >= rect.To.Y {
			continue
		}
		img.SetGray(p.X-rect.From.X, p.Y-rect.From.Y, color.Gray{Y: 255})
	}
	return img
}

// WriteMask encodes a mask image as a deflate-compressed TIFF.
func WriteMask(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// LabelMaskFilename builds the conventional export name for one label
// mask: {base}_{acquisition}[_Region_x_{x0}_{x1}_y_{y0}_{y1}]_{label}.tiff.
// The region part appears only for cropped exports.
func LabelMaskFilename(base, acquisition string, region *PixelRect, label string) string {
	name := base + "_" + acquisition
	if region != nil {
		name += fmt.Sprintf("_Region_x_%d_%d_y_%d_%d",
			region.From.X, region.To.X, region.From.Y, region.To.Y)
	}
	return name + "_" + label + ".tiff"
}

// ExportLabelMasks writes one mask TIFF per label into dir. Masks
// cover region when set, the full grid otherwise; cropped exports
// carry the region in their file names.
func ExportLabelMasks(dir, base, acquisition string, full PixelRect, region *PixelRect, masks []LabelMask) error {
	extent := full
	if region != nil {
		extent = *region
	}
	for _, lm := range masks {
		name := LabelMaskFilename(base, acquisition, region, lm.Label)
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("export label mask: %w", err)
		}
		if err := WriteMask(f, BuildMaskImage(lm.Pixels, extent)); err != nil {
			f.Close()
			return fmt.Errorf("export label mask %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("export label mask %s: %w", name, err)
		}
		Logger().Info("label mask written", "file", name, "pixels", len(lm.Pixels))
	}
	return nil
}
