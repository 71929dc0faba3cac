package raster

import (
	"math"

	"bedrock-skin-editor/internal/mathutil"
)

// LightConfig is an ambient term plus two directional lights. Shading is
// flat Lambert, one value per face.
type LightConfig struct {
	Ambient  float64
	KeyDir   mathutil.Vec3
	Key      float64
	FillDir  mathutil.Vec3
	Fill     float64
	Exposure float64 // scales the summed light so a fully lit face stays in range
	InvGamma float64
}

// DefaultLightConfig is the editor preview scene: ambient 0.8, a key light
// of 0.6 from (5,5,5) and a fill of 0.3 from (-5,3,-5).
func DefaultLightConfig() LightConfig {
	return LightConfig{
		Ambient:  0.8,
		KeyDir:   mathutil.Vec3{5, 5, 5}.Normalize(),
		Key:      0.6,
		FillDir:  mathutil.Vec3{-5, 3, -5}.Normalize(),
		Fill:     0.3,
		Exposure: 1 / 1.4,
		InvGamma: 1.0 / 2.2,
	}
}

// Shade returns the light reaching a face with world-space normal n.
func (lc *LightConfig) Shade(n mathutil.Vec3) float64 {
	key := math.Max(0, n.Dot(lc.KeyDir))
	fill := math.Max(0, n.Dot(lc.FillDir))
	return (lc.Ambient + key*lc.Key + fill*lc.Fill) * lc.Exposure
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}
