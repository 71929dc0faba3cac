package mathutil

// Ray is a half-line starting at Origin heading along Dir (unit length).
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

const rayEpsilon = 1e-9

// IntersectTriangle tests the ray against the triangle (a, b, c) using
// Möller–Trumbore. Only front faces (counter-clockwise seen from the ray
// origin) are hit. Returns the distance t and the barycentric weights of b
// and c; the weight of a is 1-wb-wc.
func (r Ray) IntersectTriangle(a, b, c Vec3) (t, wb, wc float64, ok bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det < rayEpsilon {
		return 0, 0, 0, false
	}
	inv := 1.0 / det

	s := r.Origin.Sub(a)
	wb = s.Dot(p) * inv
	if wb < 0 || wb > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(e1)
	wc = r.Dir.Dot(q) * inv
	if wc < 0 || wb+wc > 1 {
		return 0, 0, 0, false
	}

	t = e2.Dot(q) * inv
	if t <= rayEpsilon {
		return 0, 0, 0, false
	}
	return t, wb, wc, true
}
