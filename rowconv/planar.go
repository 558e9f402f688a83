/*
NAME
  planar.go

DESCRIPTION
  Planar 4:2:0 output formats, NV12 (interleaved Cb/Cr plane) and YV12
  (separate planes). Pack is called once per luma row; chroma rows are
  only emitted on odd y, averaging with the row above (§4.3).

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rowconv

import (
	"fmt"

	"github.com/ausocean/colorcore/wp13"
)

// planarYUVPacker packs one row's luma plane directly and buffers a
// vertically-subsampled chroma row every second scanline. Because the
// Output Row Converter is invoked one row at a time (§4.3), the caller is
// expected to supply a buffer sized for BytesPerRow(width), and to place
// consecutive calls' outputs into the right plane offsets itself; Pack
// here only ever emits the luma-plane bytes plus, on odd y, the averaged
// chroma pair for the two rows just seen.
type planarYUVPacker struct {
	mat               rgbToYUVMatrix
	interleavedChroma bool // true: NV12 (CbCr interleaved); false: YV12 (CrCb planar)
	swapUV            bool

	prevCb []int16
	prevCr []int16
	havePrev bool
}

func (planarYUVPacker) BytesPerRow(width int) int {
	// Luma row plus, when present, one chroma row's worth of samples.
	return width + ((width+1)/2)*2
}

func (p *planarYUVPacker) Pack(in wp13.Row, out []byte, width, y int) error {
	need := p.BytesPerRow(width)
	if len(out) < need {
		return fmt.Errorf("rowconv: output buffer too small: have %d, need %d", len(out), need)
	}
	yv, cbFull, crFull := yRow(p.mat, in, width)
	for x := 0; x < width; x++ {
		out[x] = wp13To8(yv[x], x, y)
	}

	cb := downsample444to422(cbFull, width)
	cr := downsample444to422(crFull, width)

	if y%2 == 0 {
		p.prevCb, p.prevCr = cb, cr
		p.havePrev = true
		return nil
	}

	chromaOff := width
	n := len(cb)
	for i := 0; i < n; i++ {
		avgCb := cb[i]
		avgCr := cr[i]
		if p.havePrev && i < len(p.prevCb) {
			avgCb = int16((int32(cb[i]) + int32(p.prevCb[i])) / 2)
			avgCr = int16((int32(cr[i]) + int32(p.prevCr[i])) / 2)
		}
		cbv := wp13To8(avgCb, i*2, y)
		crv := wp13To8(avgCr, i*2, y)
		if p.interleavedChroma {
			out[chromaOff+i*2] = cbv
			out[chromaOff+i*2+1] = crv
		} else {
			first, second := cbv, crv
			if p.swapUV {
				first, second = crv, cbv
			}
			out[chromaOff+i] = first
			out[chromaOff+n+i] = second
		}
	}
	return nil
}
