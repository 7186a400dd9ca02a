package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/ShengMingTang/rvs-synth-go/camera"
	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
	"github.com/ShengMingTang/rvs-synth-go/spatial"
)

// cameraRecord is one entry of a camera-parameter file, matching the field
// names used by the original JSON parameter format (spec.md §6).
type cameraRecord struct {
	Name       string     `json:"Name"`
	Projection string     `json:"Projection"`
	Position   [3]float64 `json:"Position"`
	Rotation   [3]float64 `json:"Rotation"`
	DepthRange [2]float64 `json:"Depth_range"`
	Resolution [2]int     `json:"Resolution"`

	Focal           *[2]float64 `json:"Focal,omitempty"`
	PrinciplePoint  *[2]float64 `json:"Principle_point,omitempty"`
	HorRange        *[2]float64 `json:"Hor_range,omitempty"`
	VerRange        *[2]float64 `json:"Ver_range,omitempty"`
	BitDepthColor   int         `json:"BitDepthColor"`
	BitDepthDepth   int         `json:"BitDepthDepth"`
}

// LoadCameraParameters reads a camera-parameter file (a JSON array of
// records) and returns the Parameters for exactly the cameras named, in the
// given order, grounded on Parameters::readFrom (unit_test.cpp's
// generateParameters shows the field layout).
func LoadCameraParameters(path string, names []string) ([]camera.Parameters, error) {
	op := "config.LoadCameraParameters"
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(path))
	}

	var records []cameraRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, rvserrors.New(rvserrors.Config, op, err, rvserrors.WithInput(path))
	}

	byName := make(map[string]cameraRecord, len(records))
	for _, r := range records {
		byName[r.Name] = r
	}

	out := make([]camera.Parameters, 0, len(names))
	for _, name := range names {
		rec, ok := byName[name]
		if !ok {
			return nil, rvserrors.New(rvserrors.Config, op, fmt.Errorf("camera %q not found in %s", name, path))
		}
		p, err := rec.toParameters()
		if err != nil {
			return nil, rvserrors.New(rvserrors.Config, op, err, rvserrors.WithInput(name))
		}
		out = append(out, p)
	}
	return out, nil
}

func (r cameraRecord) toParameters() (camera.Parameters, error) {
	p := camera.Parameters{
		Name: r.Name,
		Pose: spatial.Pose{
			Rotation:    spatial.EulerDegrees(r.Rotation[0], r.Rotation[1], r.Rotation[2]),
			Translation: spatial.Vec3{r.Position[0], r.Position[1], r.Position[2]},
		},
		Width:         r.Resolution[0],
		Height:        r.Resolution[1],
		ZNear:         r.DepthRange[0],
		ZFar:          r.DepthRange[1],
		BitDepthColor: r.BitDepthColor,
		BitDepthDepth: r.BitDepthDepth,
	}

	switch r.Projection {
	case "Perspective":
		p.Projection = camera.Perspective
		if r.Focal == nil || r.PrinciplePoint == nil {
			return camera.Parameters{}, fmt.Errorf("camera %q: Perspective requires Focal and Principle_point", r.Name)
		}
		p.FocalX, p.FocalY = r.Focal[0], r.Focal[1]
		p.PrincipalX, p.PrincipalY = r.PrinciplePoint[0], r.PrinciplePoint[1]
	case "Equirectangular":
		p.Projection = camera.Equirectangular
		if r.HorRange == nil || r.VerRange == nil {
			return camera.Parameters{}, fmt.Errorf("camera %q: Equirectangular requires Hor_range and Ver_range", r.Name)
		}
		p.PhiMin, p.PhiMax = degToRad(r.HorRange[0]), degToRad(r.HorRange[1])
		p.ThetaMin, p.ThetaMax = degToRad(r.VerRange[0]), degToRad(r.VerRange[1])
	default:
		return camera.Parameters{}, fmt.Errorf("camera %q: unknown Projection %q", r.Name, r.Projection)
	}

	if err := p.Validate(); err != nil {
		return camera.Parameters{}, err
	}
	return p, nil
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
