package camera

import (
	"math"

	"github.com/ShengMingTang/rvs-synth-go/spatial"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

// equirectangularProjector projects onto a 360x180 spherical image, grounded
// on EquirectangularProjection.cpp's erp::Projector.
type equirectangularProjector struct {
	width, height int
	fullWidth     int
	offset        float64
	wrapping      WrappingMethod
}

func newEquirectangularProjector(p Parameters) *equirectangularProjector {
	fullWidth := p.Width
	if 2*p.Height > fullWidth {
		fullWidth = 2 * p.Height
	}
	wrapping := NoWrap
	if IsFullHorizontal(p.PhiMin, p.PhiMax) {
		wrapping = Horizontal
	}
	return &equirectangularProjector{
		width:     p.Width,
		height:    p.Height,
		fullWidth: fullWidth,
		offset:    float64(fullWidth-p.Width) / 2,
		wrapping:  wrapping,
	}
}

// Project implements Projector: every finite-radius point has a valid image
// coordinate, since spherical coordinates cover the whole sphere.
func (pr *equirectangularProjector) Project(world []spatial.Vec3) ([]ImagePoint, []float64, WrappingMethod) {
	points := make([]ImagePoint, len(world))
	depth := make([]float64, len(world))
	for i, xyz := range world {
		radius := spatial.Norm(xyz)
		if radius == 0 || math.IsNaN(radius) {
			depth[i] = math.NaN()
			continue
		}
		phi, theta := sphericalFromEuclidian(xyz[0]/radius, xyz[1]/radius, xyz[2]/radius)
		u := horizontalImageCoordinate(phi, pr.fullWidth) - pr.offset
		v := verticalImageCoordinate(theta, pr.height)
		points[i] = ImagePoint{U: u, V: v, Valid: true}
		depth[i] = radius
	}
	return points, depth, pr.wrapping
}

// equirectangularUnprojector recovers 3D points from a radius map, grounded
// on erp::Unprojector: it precomputes one normalized direction per pixel and
// scales by the radius at unproject time.
type equirectangularUnprojector struct {
	directions []spatial.Vec3
	width      int
}

func newEquirectangularUnprojector(p Parameters) *equirectangularUnprojector {
	width, height := p.Width, p.Height
	fullWidth := width
	if 2*height > fullWidth {
		fullWidth = 2 * height
	}
	offset := float64(fullWidth-width) / 2

	directions := make([]spatial.Vec3, width*height)
	const eps = 1e-3
	for row := 0; row < height; row++ {
		vPos := float64(row) + 0.5
		if row == 0 {
			vPos = eps
		} else if row == height-1 {
			vPos = float64(height) - eps
		}
		theta := thetaFromVerticalPosition(vPos, height)
		for col := 0; col < width; col++ {
			hPos := float64(col) + 0.5
			phi := phiFromHorizontalPosition(offset+hPos, fullWidth)
			directions[row*width+col] = euclidianFromSpherical(phi, theta)
		}
	}
	return &equirectangularUnprojector{directions: directions, width: width}
}

// Unproject implements Unprojector.
func (u *equirectangularUnprojector) Unproject(depth view.Plane) []spatial.Vec3 {
	out := make([]spatial.Vec3, len(u.directions))
	for i, dir := range u.directions {
		r := float64(depth.Data[i])
		if !(r > 0) {
			out[i] = spatial.NaNVec3()
			continue
		}
		out[i] = spatial.Vec3{dir[0] * r, dir[1] * r, dir[2] * r}
	}
	return out
}

// The four angle/pixel conversions below mirror
// EquirectangularProjection.hpp's calculate_phi / calculate_theta /
// calculate_horizontal_image_coordinate / calculate_vertical_image_coordinate
// exactly, including their sign conventions.

func phiFromHorizontalPosition(hPos float64, imageWidth int) float64 {
	return 2 * math.Pi * (0.5 - hPos/float64(imageWidth))
}

func thetaFromVerticalPosition(vPos float64, imageHeight int) float64 {
	return math.Pi * (0.5 - vPos/float64(imageHeight))
}

func horizontalImageCoordinate(phi float64, imageWidth int) float64 {
	return float64(imageWidth) * (0.5 - phi/(2*math.Pi))
}

func verticalImageCoordinate(theta float64, imageHeight int) float64 {
	return float64(imageHeight) * (0.5 - theta/math.Pi)
}

func euclidianFromSpherical(phi, theta float64) spatial.Vec3 {
	return spatial.Vec3{
		math.Cos(phi) * math.Cos(theta),
		math.Sin(phi) * math.Cos(theta),
		math.Sin(theta),
	}
}

func sphericalFromEuclidian(x, y, z float64) (phi, theta float64) {
	return math.Atan2(y, x), math.Asin(z)
}
