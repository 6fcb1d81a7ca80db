package pattern

// Point is one melody-curve control point: a step position and a
// fractional row. Curves keep their points in non-decreasing step order.
type Point struct {
	Step float64
	Row  float64
}

// Curve is the ordered sequence of melody control points.
type Curve []Point

// RowAt returns the row position at step, interpolating linearly between
// the two bracketing control points. It reports false outside the curve's
// step range or when fewer than two points exist; interpolation lives
// here so the transport and the offline renderer share one definition.
func (c Curve) RowAt(step float64) (float64, bool) {
	if len(c) < 2 {
		return 0, false
	}
	if step < c[0].Step || step > c[len(c)-1].Step {
		return 0, false
	}
	for i := 1; i < len(c); i++ {
		p0, p1 := c[i-1], c[i]
		if step > p1.Step {
			continue
		}
		if p1.Step == p0.Step {
			return p1.Row, true
		}
		t := (step - p0.Step) / (p1.Step - p0.Step)
		return p0.Row + (p1.Row-p0.Row)*t, true
	}
	return 0, false
}
