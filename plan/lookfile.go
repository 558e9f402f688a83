/*
NAME
  lookfile.go

DESCRIPTION
  LookFileLoader: the external collaborator (§6) that loads a 3D-LUT
  look-file into a Cube. The default implementation reads a cube baked into
  a square image side*side pixels wide and high, where B-slice bi is the
  side x side tile of R x G values starting at column bi*side of the top
  row of tiles. Decoding goes through the
  generic image.Decode registry rather than calling image/png directly, so
  a look-file saved as BMP (registered via the blank golang.org/x/image/bmp
  import) loads the same way a PNG one does.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package plan

import (
	"fmt"
	"image"
	_ "image/png" // registered with image.Decode; not called directly.
	"io"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp" // registered for alternate look-file containers.
)

// LookFileLoader loads a 3D-LUT look-file by path, per §6's upstream
// collaborator contract `LookFileLoader.load(path) -> Option<Cube>`.
type LookFileLoader interface {
	Load(path string) (*Cube, error)
}

// PNGCubeLoader is the default LookFileLoader: it expects a square image
// side*side pixels on each side whose top row of (side x side) RGB tiles
// holds the B-slices left-to-right, one tile per B-slice (R across, G
// down); the rows of tiles below the first are not read.
type PNGCubeLoader struct{}

// Load reads the PNG at path and reconstructs a Cube from its tile grid.
func (PNGCubeLoader) Load(path string) (*Cube, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "plan: open look-file")
	}
	defer f.Close()
	return decodeCubeImage(f)
}

func decodeCubeImage(r io.Reader) (*Cube, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "plan: decode look-file image")
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Infer the cube side length and depth from the image dimensions,
	// assuming a square tile grid of side x side tiles, each side x side
	// pixels (i.e. image is side^2 square overall for depth 5 or 6).
	side := 0
	for _, d := range []int{33, 65} {
		if w == d*d && h == d*d {
			side = d
			break
		}
	}
	if side == 0 {
		return nil, fmt.Errorf("plan: look-file dimensions %dx%d do not match a known cube size", w, h)
	}
	depth := 5
	if side == 65 {
		depth = 6
	}

	c := NewCube(depth)
	for bi := 0; bi < side; bi++ {
		tileX := (bi % side) * side
		tileY := (bi / side) * side
		for ri := 0; ri < side; ri++ {
			for gi := 0; gi < side; gi++ {
				px := img.At(bounds.Min.X+tileX+ri, bounds.Min.Y+tileY+gi)
				r32, g32, b32, _ := px.RGBA()
				r := fixedFromFloat(float64(r32) / 65535.0)
				g := fixedFromFloat(float64(g32) / 65535.0)
				b := fixedFromFloat(float64(b32) / 65535.0)
				c.Set(ri, gi, bi, r, g, b)
			}
		}
	}
	return c, nil
}

// identityImage is used by tests to synthesize a minimal cube-shaped PNG
// without needing a real look-file asset on disk.
func identityImage(side int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, side*side, side*side))
	return img
}
