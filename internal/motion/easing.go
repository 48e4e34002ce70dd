package motion

import (
	"math"
	"strconv"
	"strings"

	"github.com/craftui/craftui/internal/errors"
)

// Easing maps linear progress in [0, 1] to eased progress.
type Easing interface {
	Ease(t float64) float64
}

type linear struct{}

func (linear) Ease(t float64) float64 { return t }

// Linear is the identity curve.
var Linear Easing = linear{}

// CubicBezier is a CSS cubic-bezier() timing function with fixed end points
// (0,0) and (1,1).
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// Named CSS timing functions.
var named = map[string]CubicBezier{
	"ease":        {0.25, 0.1, 0.25, 1},
	"ease-in":     {0.42, 0, 1, 1},
	"ease-out":    {0, 0, 0.58, 1},
	"ease-in-out": {0.42, 0, 0.58, 1},
}

// ParseEasing accepts "linear", the named CSS curves and
// "cubic-bezier(x1, y1, x2, y2)" with x1 and x2 in [0, 1].
func ParseEasing(s string) (Easing, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == "linear" {
		return Linear, nil
	}
	if c, ok := named[v]; ok {
		return c, nil
	}

	inner, ok := strings.CutPrefix(v, "cubic-bezier(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return nil, errors.NewMotionError(s, errors.ErrInvalidEasing)
	}
	fields := strings.Split(strings.TrimSuffix(inner, ")"), ",")
	if len(fields) != 4 {
		return nil, errors.NewMotionError(s, errors.ErrInvalidEasing)
	}

	var p [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.NewMotionError(s, errors.Join(errors.ErrInvalidEasing, err))
		}
		p[i] = n
	}
	if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
		return nil, errors.NewMotionError(s, errors.ErrInvalidEasing)
	}
	return CubicBezier{X1: p[0], Y1: p[1], X2: p[2], Y2: p[3]}, nil
}

func bezier(a1, a2, t float64) float64 {
	// B(t) for control values a1, a2 with fixed 0 and 1 end points.
	u := 1 - t
	return 3*u*u*t*a1 + 3*u*t*t*a2 + t*t*t
}

func bezierSlope(a1, a2, t float64) float64 {
	u := 1 - t
	return 3*u*u*a1 + 6*u*t*(a2-a1) + 3*t*t*(1-a2)
}

// Ease solves x(t) = x for t, then returns y(t).
func (c CubicBezier) Ease(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	// Newton-Raphson first; fall back to bisection when the slope flattens.
	t := x
	for range 8 {
		dx := bezier(c.X1, c.X2, t) - x
		if math.Abs(dx) < 1e-6 {
			return bezier(c.Y1, c.Y2, t)
		}
		slope := bezierSlope(c.X1, c.X2, t)
		if math.Abs(slope) < 1e-6 {
			break
		}
		t -= dx / slope
	}

	lo, hi := 0.0, 1.0
	t = x
	for range 32 {
		v := bezier(c.X1, c.X2, t)
		if math.Abs(v-x) < 1e-6 {
			break
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return bezier(c.Y1, c.Y2, t)
}
