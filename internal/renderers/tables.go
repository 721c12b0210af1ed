// Renderer strategies for celestial bodies, driven by parameter tables.
// Subtype appearance is data, not subclasses: new spectral or gas giant
// classes are added as table rows (see DESIGN.md).
package renderers

import "github.com/go-gl/mathgl/mgl32"

// spectralParams drives star appearance per spectral class.
type spectralParams struct {
	Color     mgl32.Vec3
	Corona    float32 // corona radius multiplier
	PulseRate float32 // emissive pulse speed
}

// spectralTable follows the Morgan-Keenan sequence, hottest first.
var spectralTable = map[string]spectralParams{
	"O": {Color: mgl32.Vec3{0.61, 0.69, 1.00}, Corona: 2.6, PulseRate: 0.8},
	"B": {Color: mgl32.Vec3{0.67, 0.75, 1.00}, Corona: 2.3, PulseRate: 0.7},
	"A": {Color: mgl32.Vec3{0.79, 0.84, 1.00}, Corona: 2.0, PulseRate: 0.6},
	"F": {Color: mgl32.Vec3{0.97, 0.96, 1.00}, Corona: 1.8, PulseRate: 0.5},
	"G": {Color: mgl32.Vec3{1.00, 0.96, 0.84}, Corona: 1.7, PulseRate: 0.4},
	"K": {Color: mgl32.Vec3{1.00, 0.82, 0.60}, Corona: 1.5, PulseRate: 0.35},
	"M": {Color: mgl32.Vec3{1.00, 0.66, 0.44}, Corona: 1.4, PulseRate: 0.3},
}

// gasGiantParams drives gas giant appearance per Sudarsky class.
type gasGiantParams struct {
	Color      mgl32.Vec3
	BandCount  int
	CloudAlpha float32
}

// gasGiantTable covers the five Sudarsky appearance classes.
var gasGiantTable = map[string]gasGiantParams{
	"I":   {Color: mgl32.Vec3{0.80, 0.72, 0.58}, BandCount: 6, CloudAlpha: 0.9}, // ammonia clouds
	"II":  {Color: mgl32.Vec3{0.90, 0.88, 0.84}, BandCount: 4, CloudAlpha: 1.0}, // water clouds
	"III": {Color: mgl32.Vec3{0.35, 0.45, 0.80}, BandCount: 3, CloudAlpha: 0.2}, // cloudless blue
	"IV":  {Color: mgl32.Vec3{0.45, 0.30, 0.25}, BandCount: 5, CloudAlpha: 0.5}, // alkali metals
	"V":   {Color: mgl32.Vec3{0.60, 0.55, 0.45}, BandCount: 7, CloudAlpha: 0.7}, // silicate clouds
}

// planetPalette tints rocky bodies by their surface property.
var planetPalette = map[string]mgl32.Vec3{
	"rocky":  {0.55, 0.50, 0.45},
	"icy":    {0.80, 0.88, 0.95},
	"ocean":  {0.15, 0.35, 0.70},
	"lava":   {0.70, 0.25, 0.10},
	"desert": {0.80, 0.65, 0.40},
}

// Default LOD thresholds, scaled per-body by radius and globally by config.
const (
	midTierDistance = 40.0
	farTierDistance = 200.0
)
