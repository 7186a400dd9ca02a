// Package config implements the external configuration collaborator
// (spec.md §6): the top-level run configuration, the per-camera parameter
// file format, and the CSV pose-trace format, grounded on Config.cpp/hpp,
// JsonParser.cpp and PoseTraces.cpp.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
)

// BlendingMethod names the C5 variant to run.
type BlendingMethod string

const (
	BlendingSimple       BlendingMethod = "Simple"
	BlendingMultiSpectral BlendingMethod = "MultiSpectral"
)

// ColorSpaceName names the working colour space (view.ColorSpace's on-disk
// spelling).
type ColorSpaceName string

const (
	ColorSpaceYUV ColorSpaceName = "YUV"
	ColorSpaceRGB ColorSpaceName = "RGB"
)

// Config is the decoded, validated run configuration (spec.md §6).
type Config struct {
	Version                    string   `mapstructure:"Version"`
	InputCameraNames           []string `mapstructure:"InputCameraNames"`
	VirtualCameraNames         []string `mapstructure:"VirtualCameraNames"`
	InputCameraParameterFile   string   `mapstructure:"InputCameraParameterFile"`
	VirtualCameraParameterFile string   `mapstructure:"VirtualCameraParameterFile"`

	Texture []string `mapstructure:"Texture"`
	Depth   []string `mapstructure:"Depth"`

	OutputFiles       []string `mapstructure:"OutputFiles"`
	OutputMasks       []string `mapstructure:"OutputMasks"`
	OutputMaskedFiles []string `mapstructure:"OutputMaskedFiles"`
	OutputDepth       []string `mapstructure:"OutputDepth"`

	ValidityThreshold *float64 `mapstructure:"ValidityThreshold"`

	BlendingMethod         BlendingMethod `mapstructure:"BlendingMethod"`
	BlendingFactor         float64        `mapstructure:"BlendingFactor"`
	BlendingLowFreqFactor  *float64       `mapstructure:"BlendingLowFreqFactor"`
	BlendingHighFreqFactor *float64       `mapstructure:"BlendingHighFreqFactor"`

	StartFrame     int `mapstructure:"StartFrame"`
	NumberOfFrames int `mapstructure:"NumberOfFrames"`

	Precision float64 `mapstructure:"Precision"`

	ColorSpace ColorSpaceName `mapstructure:"ColorSpace"`

	VirtualPoseTraceName string `mapstructure:"VirtualPoseTraceName"`
}

// defaults applies spec.md §6's documented defaults before validation.
func (c *Config) defaults() {
	if c.BlendingMethod == "" {
		c.BlendingMethod = BlendingSimple
	}
	if c.BlendingFactor == 0 {
		c.BlendingFactor = 1.0
	}
	if c.Precision == 0 {
		c.Precision = 1.0
	}
	if c.ColorSpace == "" {
		c.ColorSpace = ColorSpaceYUV
	}
	if c.NumberOfFrames == 0 {
		c.NumberOfFrames = 1
	}
}

// Load reads and validates a run configuration from a JSON file.
func Load(path string) (*Config, error) {
	op := "config.Load"
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, rvserrors.New(rvserrors.IO, op, err)
	}

	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, rvserrors.New(rvserrors.Config, op, err)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, rvserrors.New(rvserrors.Internal, op, err)
	}
	if err := decoder.Decode(generic); err != nil {
		return nil, rvserrors.New(rvserrors.Config, op, err)
	}

	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces spec.md §6/§7's ConfigError invariants.
func (c *Config) Validate() error {
	op := "config.Config.Validate"
	if !strings.HasPrefix(c.Version, "2.") {
		return rvserrors.New(rvserrors.Config, op, fmt.Errorf("unsupported config version %q, want a \"2.\" prefix", c.Version))
	}
	if len(c.InputCameraNames) == 0 {
		return rvserrors.New(rvserrors.Config, op, fmt.Errorf("InputCameraNames must be non-empty"))
	}
	if len(c.VirtualCameraNames) == 0 {
		return rvserrors.New(rvserrors.Config, op, fmt.Errorf("VirtualCameraNames must be non-empty"))
	}
	if err := matchLength(op, "Texture", c.Texture, len(c.InputCameraNames)); err != nil {
		return err
	}
	if err := matchLength(op, "Depth", c.Depth, len(c.InputCameraNames)); err != nil {
		return err
	}
	for _, list := range []struct {
		name   string
		values []string
	}{
		{"OutputFiles", c.OutputFiles},
		{"OutputMasks", c.OutputMasks},
		{"OutputMaskedFiles", c.OutputMaskedFiles},
		{"OutputDepth", c.OutputDepth},
	} {
		if len(list.values) > 0 {
			if err := matchLength(op, list.name, list.values, len(c.VirtualCameraNames)); err != nil {
				return err
			}
		}
	}
	switch c.BlendingMethod {
	case BlendingSimple:
	case BlendingMultiSpectral:
		if c.BlendingLowFreqFactor == nil || c.BlendingHighFreqFactor == nil {
			return rvserrors.New(rvserrors.Config, op, fmt.Errorf("MultiSpectral blending requires BlendingLowFreqFactor and BlendingHighFreqFactor"))
		}
	default:
		return rvserrors.New(rvserrors.Config, op, fmt.Errorf("unknown BlendingMethod %q", c.BlendingMethod))
	}
	switch c.ColorSpace {
	case ColorSpaceYUV, ColorSpaceRGB:
	default:
		return rvserrors.New(rvserrors.Config, op, fmt.Errorf("unknown ColorSpace %q", c.ColorSpace))
	}
	if c.Precision < 1.0 {
		return rvserrors.New(rvserrors.Config, op, fmt.Errorf("Precision must be >= 1.0, got %g", c.Precision))
	}
	if c.NumberOfFrames <= 0 {
		return rvserrors.New(rvserrors.Config, op, fmt.Errorf("NumberOfFrames must be positive, got %d", c.NumberOfFrames))
	}
	return nil
}

func matchLength(op, name string, values []string, want int) error {
	if len(values) != want {
		return rvserrors.New(rvserrors.Config, op, fmt.Errorf("length of %s (%d) must match the length of the camera-name list it is aligned with (%d)", name, len(values), want))
	}
	return nil
}
