package gen

import (
	"math"
	"math/rand"

	"kokesynth/pattern"
)

// MelodyStyle selects how melody-curve control points are laid out.
type MelodyStyle string

const (
	MelodyLinear     MelodyStyle = "linear"
	MelodyCubic      MelodyStyle = "cubic"
	MelodyStep       MelodyStyle = "step"
	MelodyWave       MelodyStyle = "wave"
	MelodyRandomWalk MelodyStyle = "walk"
	MelodyArpUp      MelodyStyle = "arpup"
	MelodyArpDown    MelodyStyle = "arpdown"
)

var MelodyStyles = []MelodyStyle{
	MelodyLinear, MelodyCubic, MelodyStep, MelodyWave,
	MelodyRandomWalk, MelodyArpUp, MelodyArpDown,
}

// Melody generates melody-curve control points over a pattern of the
// given step count, spanning rows minRow..maxRow. count is the number of
// anchor points for the linear, cubic and step styles; the other styles
// derive their own point counts. Steps are strictly non-decreasing.
func Melody(rng *rand.Rand, style MelodyStyle, count, steps int, minRow, maxRow float64) pattern.Curve {
	if count < 2 {
		count = 2
	}
	switch style {
	case MelodyCubic:
		return melodyCubic(rng, count, steps, minRow, maxRow)
	case MelodyWave:
		return melodyWave(steps, minRow, maxRow)
	case MelodyRandomWalk:
		return melodyRandomWalk(rng, steps, minRow, maxRow)
	case MelodyArpUp:
		return melodyArpeggio(steps, minRow, maxRow, false)
	case MelodyArpDown:
		return melodyArpeggio(steps, minRow, maxRow, true)
	case MelodyStep:
		// Staircase: duplicate each anchor's row at the next anchor's
		// step so interpolation holds the note until it jumps.
		anchors := melodyAnchors(rng, count, steps, minRow, maxRow)
		curve := make(pattern.Curve, 0, len(anchors)*2)
		for i, p := range anchors {
			curve = append(curve, p)
			if i < len(anchors)-1 {
				curve = append(curve, pattern.Point{Step: anchors[i+1].Step, Row: p.Row})
			}
		}
		return curve
	default:
		return melodyAnchors(rng, count, steps, minRow, maxRow)
	}
}

// melodyAnchors spreads count random-pitch points evenly across the
// pattern.
func melodyAnchors(rng *rand.Rand, count, steps int, minRow, maxRow float64) pattern.Curve {
	curve := make(pattern.Curve, count)
	for i := range curve {
		curve[i] = pattern.Point{
			Step: float64(i) * float64(steps-1) / float64(count-1),
			Row:  minRow + rng.Float64()*(maxRow-minRow),
		}
	}
	return curve
}

// melodyCubic lays out the same random-pitch anchors as the linear style
// but emits one point per step, easing between anchors with the
// smoothstep polynomial t*t*(3-2t) so transitions accelerate out of one
// pitch and settle into the next. With fewer than three anchors the
// curve is the anchors themselves.
func melodyCubic(rng *rand.Rand, count, steps int, minRow, maxRow float64) pattern.Curve {
	anchors := melodyAnchors(rng, count, steps, minRow, maxRow)
	if len(anchors) < 3 {
		return anchors
	}
	curve := make(pattern.Curve, steps)
	for step := 0; step < steps; step++ {
		s := float64(step)
		row := anchors[len(anchors)-1].Row
		for i := 1; i < len(anchors); i++ {
			p0, p1 := anchors[i-1], anchors[i]
			if s > p1.Step {
				continue
			}
			t := (s - p0.Step) / (p1.Step - p0.Step)
			t = t * t * (3 - 2*t)
			row = p0.Row + (p1.Row-p0.Row)*t
			break
		}
		curve[step] = pattern.Point{Step: s, Row: row}
	}
	return curve
}

func melodyWave(steps int, minRow, maxRow float64) pattern.Curve {
	const points = 32
	mid := (minRow + maxRow) / 2
	amp := (maxRow - minRow) / 2
	curve := make(pattern.Curve, points)
	for i := range curve {
		step := float64(i) * float64(steps-1) / float64(points-1)
		angle := step * 2 * math.Pi / float64(steps)
		curve[i] = pattern.Point{Step: step, Row: mid + amp*math.Sin(angle)}
	}
	return curve
}

func melodyRandomWalk(rng *rand.Rand, steps int, minRow, maxRow float64) pattern.Curve {
	row := (minRow + maxRow) / 2
	curve := make(pattern.Curve, steps)
	for step := 0; step < steps; step++ {
		curve[step] = pattern.Point{Step: float64(step), Row: row}
		row += rng.Float64() - 0.5
		row = math.Max(minRow, math.Min(maxRow, row))
	}
	return curve
}

func melodyArpeggio(steps int, minRow, maxRow float64, down bool) pattern.Curve {
	const arpNotes = 5
	rows := make([]float64, arpNotes)
	for i := range rows {
		rows[i] = minRow + float64(i)*(maxRow-minRow)/float64(arpNotes-1)
	}
	if down {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}
	curve := make(pattern.Curve, steps)
	for step := 0; step < steps; step++ {
		curve[step] = pattern.Point{Step: float64(step), Row: rows[step%arpNotes]}
	}
	return curve
}
