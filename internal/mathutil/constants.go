package mathutil

// Preview camera matrices for the humanoid renderer.
var (
	// PreviewView is the three-quarter view used for skin thumbnails:
	// Rx(12°) @ Ry(-30°), looking down the -Z axis of view space.
	PreviewView = Mat3Mul(RotX(Deg2Rad(12)), RotY(Deg2Rad(-30)))

	// PreviewBackView is the same elevation seen from behind and to the
	// other side.
	PreviewBackView = Mat3Mul(RotX(Deg2Rad(12)), RotY(Deg2Rad(150)))

	// FrontView faces the character head-on.
	FrontView = Mat3Identity()
)

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
