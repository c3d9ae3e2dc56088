package main

import (
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/eth2030/aggbls/log"
)

// Supported curves and orientations.
const (
	CurveBLS12381 = "bls12381"
	CurveBN254    = "bn254"

	OrientationStandard = "standard"
	OrientationInverted = "inverted"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config selects the signature scheme and how the tool reports. It is read
// from an optional YAML file and then overridden by command line flags.
type Config struct {
	Curve       string `yaml:"curve"`
	Orientation string `yaml:"orientation"`
	// PoP requires a proof of possession for every public key and allows
	// several signers of one message.
	PoP bool `yaml:"pop"`
	// Context domain-separates messages; signer and verifier must agree.
	Context   string `yaml:"context"`
	Verbosity int    `yaml:"verbosity"`
	LogFormat string `yaml:"log_format"`
	Workers   int    `yaml:"workers"`
}

func DefaultConfig() Config {
	return Config{
		Curve:       CurveBLS12381,
		Orientation: OrientationStandard,
		Verbosity:   3,
		LogFormat:   log.FormatText,
		Workers:     runtime.NumCPU(),
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the file
// keep their default values; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "opening config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	switch c.Curve {
	case CurveBLS12381, CurveBN254:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown curve %q", c.Curve)
	}
	switch c.Orientation {
	case OrientationStandard, OrientationInverted:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown orientation %q", c.Orientation)
	}
	if c.Verbosity < 0 || c.Verbosity > 5 {
		return errors.Wrapf(ErrInvalidConfig, "verbosity %d out of range 0-5", c.Verbosity)
	}
	if c.LogFormat != log.FormatText && c.LogFormat != log.FormatJSON {
		return errors.Wrapf(ErrInvalidConfig, "unknown log format %q", c.LogFormat)
	}
	if c.Workers < 1 {
		return errors.Wrapf(ErrInvalidConfig, "workers must be positive, got %d", c.Workers)
	}
	return nil
}
