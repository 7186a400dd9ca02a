// Package ioimage implements the external image formats (spec.md §6):
// planar YUV 4:2:0 texture/disparity streams, 8/16-bit PNG stills, and
// OpenEXR depth, plus debug-dump helpers for previewing a frame or a
// reconstructed point cloud. Grounded on image_loading.cpp/image_writing.cpp
// (bit-depth handling, YUV 4:2:0 layout, disparity linearization) and on the
// teacher's own image-format stack (disintegration/imaging, xfmoulet/qoi,
// lmittmann/ppm, chenzhekl/goply).
package ioimage

import (
	"fmt"
	"strings"

	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
)

// maxLevel returns (1<<bitDepth)-1, the saturating sample value for a raw
// stream of the given bit depth.
func maxLevel(bitDepth int) uint32 {
	return (uint32(1) << uint(bitDepth)) - 1
}

// bytesPerSample returns 1 for bit depths 1-8 and 2 for 9-16, matching
// cvdepth_from_bit_depth's CV_8U / CV_16U dispatch.
func bytesPerSample(op string, bitDepth int) (int, error) {
	switch {
	case bitDepth >= 1 && bitDepth <= 8:
		return 1, nil
	case bitDepth >= 9 && bitDepth <= 16:
		return 2, nil
	default:
		return 0, rvserrors.New(rvserrors.IO, op, errf("invalid raw image bit depth %d", bitDepth))
	}
}

func isYUV(filename string) bool {
	return strings.Contains(strings.ToLower(filename), ".yuv")
}

func errf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
