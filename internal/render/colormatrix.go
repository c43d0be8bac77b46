package render

import "math"

// mat5 is a homogeneous color transform acting on (r, g, b, a, 1).
type mat5 [5][5]float64

func identity5() mat5 {
	var m mat5
	for i := range m {
		m[i][i] = 1
	}
	return m
}

func (m mat5) mul(n mat5) mat5 {
	var out mat5
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			var sum float64
			for k := 0; k < 5; k++ {
				sum += m[i][k] * n[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// colorAdjustMatrix folds brightness, contrast, saturation (percent, 100 is
// neutral) and hue rotation (degrees) into one feColorMatrix. They apply in
// that order, matching the CSS filter chain the editor previews with.
func colorAdjustMatrix(brightness, contrast, saturation, hue float64) [20]float64 {
	b := brightness / 100
	bright := identity5()
	for i := 0; i < 3; i++ {
		bright[i][i] = b
	}

	c := contrast / 100
	cont := identity5()
	for i := 0; i < 3; i++ {
		cont[i][i] = c
		cont[i][4] = 0.5 - 0.5*c
	}

	s := saturation / 100
	sat := identity5()
	sat[0][0], sat[0][1], sat[0][2] = 0.213+0.787*s, 0.715-0.715*s, 0.072-0.072*s
	sat[1][0], sat[1][1], sat[1][2] = 0.213-0.213*s, 0.715+0.285*s, 0.072-0.072*s
	sat[2][0], sat[2][1], sat[2][2] = 0.213-0.213*s, 0.715-0.715*s, 0.072+0.928*s

	rad := hue * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	rot := identity5()
	rot[0][0], rot[0][1], rot[0][2] = 0.213+cos*0.787-sin*0.213, 0.715-cos*0.715-sin*0.715, 0.072-cos*0.072+sin*0.928
	rot[1][0], rot[1][1], rot[1][2] = 0.213-cos*0.213+sin*0.143, 0.715+cos*0.285+sin*0.140, 0.072-cos*0.072-sin*0.283
	rot[2][0], rot[2][1], rot[2][2] = 0.213-cos*0.213-sin*0.787, 0.715-cos*0.715+sin*0.715, 0.072+cos*0.928+sin*0.072

	m := rot.mul(sat).mul(cont).mul(bright)

	var out [20]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			out[i*5+j] = m[i][j]
		}
	}
	return out
}
