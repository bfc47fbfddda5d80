package media

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Environment is a snapshot of the output device and user preferences.
// Lengths are in CSS pixels.
type Environment struct {
	Type             string  `yaml:"type"` // all, screen, print, speech, …
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	DeviceWidth      float64 `yaml:"device-width"`  // defaults to Width
	DeviceHeight     float64 `yaml:"device-height"` // defaults to Height
	DevicePixelRatio float64 `yaml:"device-pixel-ratio"`
	Color            int     `yaml:"color"` // bits per colour component
	ColorIndex       int     `yaml:"color-index"`
	Monochrome       int     `yaml:"monochrome"` // bits per pixel of a monochrome device
	ColorGamut       string  `yaml:"color-gamut"`
	Scan             string  `yaml:"scan"`
	Grid             bool    `yaml:"grid"`
	Update           string  `yaml:"update"`
	Hover            string  `yaml:"hover"`
	AnyHover         string  `yaml:"any-hover"` // defaults to Hover
	Pointer          string  `yaml:"pointer"`
	AnyPointer       string  `yaml:"any-pointer"` // defaults to Pointer
	ReducedMotion    bool    `yaml:"prefers-reduced-motion"`
	ReducedData      bool    `yaml:"prefers-reduced-data"`
	ReducedTransp    bool    `yaml:"prefers-reduced-transparency"`
	ColorScheme      string  `yaml:"prefers-color-scheme"`
	Contrast         string  `yaml:"prefers-contrast"`
	ForcedColors     bool    `yaml:"forced-colors"`
	Scripting        string  `yaml:"scripting"`
}

// DefaultEnvironment returns the environment of a desktop screen with a
// 1024×768 viewport, 24-bit colour, a mouse and no user preferences set.
func DefaultEnvironment() Environment {
	return Environment{
		Type:             "screen",
		Width:            1024,
		Height:           768,
		DevicePixelRatio: 1,
		Color:            8,
		ColorGamut:       "srgb",
		Scan:             "progressive",
		Update:           "fast",
		Hover:            "hover",
		Pointer:          "fine",
		ColorScheme:      "light",
		Contrast:         "no-preference",
		Scripting:        "enabled",
	}
}

// Orientation returns "portrait" if the viewport is at least as high as it
// is wide, and "landscape" otherwise.
func (env Environment) Orientation() string {
	if env.Height >= env.Width {
		return "portrait"
	}
	return "landscape"
}

func (env Environment) deviceWidth() float64 {
	if env.DeviceWidth > 0 {
		return env.DeviceWidth
	}
	return env.Width
}

func (env Environment) deviceHeight() float64 {
	if env.DeviceHeight > 0 {
		return env.DeviceHeight
	}
	return env.Height
}

func (env Environment) anyHover() string {
	if env.AnyHover != "" {
		return env.AnyHover
	}
	return env.Hover
}

func (env Environment) anyPointer() string {
	if env.AnyPointer != "" {
		return env.AnyPointer
	}
	return env.Pointer
}

// LoadEnvironment reads an environment snapshot in YAML format. Fields not
// present in the input keep the values of DefaultEnvironment:
//
//     type: print
//     width: 794
//     height: 1123
//     prefers-color-scheme: dark
//
func LoadEnvironment(r io.Reader) (Environment, error) {
	env := DefaultEnvironment()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&env); err != nil && err != io.EOF {
		return DefaultEnvironment(), fmt.Errorf("media: cannot load environment: %w", err)
	}
	if env.Width < 0 || env.Height < 0 || env.DevicePixelRatio < 0 {
		return DefaultEnvironment(), fmt.Errorf("media: environment with negative dimensions")
	}
	tracer().Debugf("loaded media environment %s %gx%g", env.Type, env.Width, env.Height)
	return env, nil
}
