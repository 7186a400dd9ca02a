package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
	"github.com/ShengMingTang/rvs-synth-go/spatial"
)

// PoseTraceEntry is one frame's virtual-camera pose delta (spec.md §6 "Pose
// trace format"): position in metres, rotation in degrees, already turned
// into a rotation matrix.
type PoseTraceEntry struct {
	Translation spatial.Vec3
	Rotation    spatial.Mat3
}

var poseTraceHeader = []string{"X", "Y", "Z", "Yaw", "Pitch", "Roll"}

// LoadPoseTrace reads a CSV pose trace: header "X,Y,Z,Yaw,Pitch,Roll", one
// data row per frame, blank trailing lines ignored.
func LoadPoseTrace(path string) ([]PoseTraceEntry, error) {
	op := "config.LoadPoseTrace"
	f, err := os.Open(path)
	if err != nil {
		return nil, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(path))
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, rvserrors.New(rvserrors.Config, op, fmt.Errorf("reading pose trace header: %w", err), rvserrors.WithInput(path))
	}
	if !matchesHeader(header) {
		return nil, rvserrors.New(rvserrors.Config, op, fmt.Errorf("pose trace header %v does not match %v", header, poseTraceHeader), rvserrors.WithInput(path))
	}

	var entries []PoseTraceEntry
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rvserrors.New(rvserrors.Config, op, err, rvserrors.WithInput(path))
		}
		if isBlankRow(row) {
			continue
		}
		entry, err := parsePoseTraceRow(row)
		if err != nil {
			return nil, rvserrors.New(rvserrors.Config, op, err, rvserrors.WithInput(path))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func matchesHeader(header []string) bool {
	if len(header) != len(poseTraceHeader) {
		return false
	}
	for i, h := range header {
		if strings.TrimSpace(h) != poseTraceHeader[i] {
			return false
		}
	}
	return true
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parsePoseTraceRow(row []string) (PoseTraceEntry, error) {
	if len(row) != 6 {
		return PoseTraceEntry{}, fmt.Errorf("expected 6 fields, got %d", len(row))
	}
	vals := make([]float64, 6)
	for i, s := range row {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return PoseTraceEntry{}, fmt.Errorf("field %d: %w", i, err)
		}
		vals[i] = v
	}
	if !allFinite(vals) {
		return PoseTraceEntry{}, fmt.Errorf("pose trace row contains a non-finite value")
	}
	return PoseTraceEntry{
		Translation: spatial.Vec3{vals[0], vals[1], vals[2]},
		Rotation:    spatial.EulerDegrees(vals[3], vals[4], vals[5]),
	}, nil
}

func allFinite(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
