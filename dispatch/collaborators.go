/*
NAME
  collaborators.go

DESCRIPTION
  External collaborator interfaces the dispatcher's job kinds depend on
  but do not themselves implement (§6): the inverse wavelet transform, and
  the stereoscopic geometry/remap engine behind the 3D job kinds.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package dispatch

// WaveletInverter reconstructs one row's worth of wavelet coefficients
// into spatial-domain channel samples, the upstream collaborator behind
// the WAVELET job kind (§6).
type WaveletInverter interface {
	InverseRow(channel, y int, dst []int16) error
}

// GeomeshEngine warps a row using a stereoscopic geometry mesh, behind the
// HORIZONTAL_3D/VERTICAL_3D job kinds (§6, §4.5).
type GeomeshEngine interface {
	WarpRow(eye int, y int, src, dst []int16) error
}
