package constants

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultOutDir = "./out"
	DefaultAddr   = ":8080"
	DefaultBPM    = 120

	// largest sheet accepted over http
	MaxSheetBytes = 1 << 20
	// largest expanded tree sent back as JSON
	MaxTreeNodes = 1 << 16
)

func GetOutDir() string {
	path := os.Getenv("TUNESHEET_OUT")
	if path != "" {
		return path
	}
	return DefaultOutDir
}

func GetAddr() string {
	addr := os.Getenv("TUNESHEET_ADDR")
	if addr != "" {
		return addr
	}
	return DefaultAddr
}

// Settings is everything the commands can be configured with. Fields left
// empty in the YAML file keep their defaults.
type Settings struct {
	OutDir     string  `yaml:"out_dir"`
	Addr       string  `yaml:"addr"`
	BPM        float64 `yaml:"bpm"`
	Velocity   uint8   `yaml:"velocity"`
	Channel    uint8   `yaml:"channel"`
	Resolution uint16  `yaml:"resolution"`
	Seed       int64   `yaml:"seed"`
	Port       int     `yaml:"port"`
}

func Defaults() Settings {
	return Settings{
		OutDir:     GetOutDir(),
		Addr:       GetAddr(),
		BPM:        DefaultBPM,
		Velocity:   100,
		Resolution: 960,
	}
}

// Load reads the YAML file at path, if any, over the defaults and then applies
// TUNESHEET_* environment variables, which win over the file.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, errors.Wrap(err, "could not read config")
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, errors.Wrapf(err, "could not parse config %v", path)
		}
	}

	if v := os.Getenv("TUNESHEET_OUT"); v != "" {
		s.OutDir = v
	}
	if v := os.Getenv("TUNESHEET_ADDR"); v != "" {
		s.Addr = v
	}
	if v := os.Getenv("TUNESHEET_BPM"); v != "" {
		bpm, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return s, errors.Wrap(err, "TUNESHEET_BPM")
		}
		s.BPM = bpm
	}
	if v := os.Getenv("TUNESHEET_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return s, errors.Wrap(err, "TUNESHEET_SEED")
		}
		s.Seed = seed
	}

	if s.BPM <= 0 {
		return s, errors.Errorf("bpm must be positive, got %v", s.BPM)
	}
	if s.Channel > 15 {
		return s, errors.Errorf("channel must be between 0 and 15, got %v", s.Channel)
	}
	return s, nil
}
