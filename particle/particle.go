// Package particle defines the particle kinds an effect can request from a display host.
package particle

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownKind is returned when a kind name cannot be resolved.
var ErrUnknownKind = errors.New("unknown particle kind")

// Kind identifies the particle a host should draw.
type Kind uint8

const (
	KindDripWater Kind = iota
	KindCloud
	KindSplash
	KindBubble
	KindDust
	KindSnow
	KindSpark
	numKinds
)

var kindNames = [numKinds]string{
	KindDripWater: "drip_water",
	KindCloud:     "cloud",
	KindSplash:    "splash",
	KindBubble:    "bubble",
	KindDust:      "dust",
	KindSnow:      "snow",
	KindSpark:     "spark",
}

var kindColors = [numKinds]color.RGBA{
	KindDripWater: {R: 40, G: 90, B: 220, A: 255},
	KindCloud:     {R: 235, G: 240, B: 245, A: 255},
	KindSplash:    {R: 90, G: 160, B: 240, A: 255},
	KindBubble:    {R: 150, G: 210, B: 250, A: 255},
	KindDust:      {R: 200, G: 60, B: 60, A: 255},
	KindSnow:      {R: 250, G: 250, B: 255, A: 255},
	KindSpark:     {R: 255, G: 190, B: 60, A: 255},
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Color returns the default render color of the kind.
func (k Kind) Color() color.RGBA {
	if k < numKinds {
		return kindColors[k]
	}
	return color.RGBA{R: 255, G: 0, B: 255, A: 255}
}

// Kinds returns every known kind.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseKind resolves a configuration name such as "drip_water" or "CLOUD".
func ParseKind(name string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.ReplaceAll(norm, "-", "_")
	for i, n := range kindNames {
		if n == norm {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// ParseColor parses a "#rrggbb" hex color. An empty string yields nil (no override).
func ParseColor(hex string) (*color.RGBA, error) {
	if hex == "" {
		return nil, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("parsing color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return &color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
