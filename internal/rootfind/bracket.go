package rootfind

// bracketScanSteps is the number of radii tried by FindBracket.
const bracketScanSteps = 100

// minBracketRadius is the first radius tried by FindBracket.
const minBracketRadius = 0.1

// FindBracket looks for an interval [center-r, center+r] on which f changes
// sign, trying radii evenly spaced in [0.1, radius]. It returns ErrNoBracket
// when none of them works.
func FindBracket(f Func, center, radius float64) (lower, upper float64, err error) {
	if !(radius >= minBracketRadius) {
		radius = minBracketRadius
	}
	step := (radius - minBracketRadius) / (bracketScanSteps - 1)
	for i := 0; i < bracketScanSteps; i++ {
		r := minBracketRadius + float64(i)*step
		a, b := center-r, center+r
		if f(a)*f(b) < 0 {
			return a, b, nil
		}
	}
	return 0, 0, ErrNoBracket
}
