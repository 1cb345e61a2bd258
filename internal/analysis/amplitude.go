package analysis

import (
	"strings"

	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/integrators"
	"github.com/san-kum/predsim/internal/physics"
)

// AmplitudePoint holds the distinct peak densities reached for one
// coefficient value.
type AmplitudePoint struct {
	Param  float64
	Values []float64
}

// AmplitudeDiagram sweeps one coefficient and records the distinct peak
// densities of the selected population after a transient. Closed cycles
// show up as a single value per column; extinction as none.
func AmplitudeDiagram(
	base physics.Coefficients,
	paramName string,
	paramMin, paramMax float64,
	paramSteps int,
	x0 dynamo.State,
	prey bool,
	dt, transient, record float64,
) ([]AmplitudePoint, error) {
	if paramSteps <= 1 {
		paramSteps = 2
	}
	simCfg := dynamo.Config{Dt: dt, RunTime: transient + record}
	if err := simCfg.Validate(); err != nil {
		return nil, err
	}
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)
	integ := integrators.NewMidpoint()

	results := make([]AmplitudePoint, 0, paramSteps)
	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*paramStep
		coeffs, err := base.With(paramName, param)
		if err != nil {
			return nil, err
		}

		sim := dynamo.New(coeffs, integ, x0, simCfg)
		for sim.Time() < transient && sim.Advance() {
		}

		var prev2, prev1 float64
		values := make([]float64, 0, 16)
		seen := make(map[int]bool)
		n := 0
		for sim.Advance() {
			x := sim.State()
			v := x.Predators
			if prey {
				v = x.Prey
			}
			if n >= 2 && prev1 > prev2 && prev1 > v {
				// quantize so one closed cycle records one value
				key := int(prev1 * 1000)
				if !seen[key] {
					seen[key] = true
					values = append(values, prev1)
				}
			}
			prev2, prev1 = prev1, v
			n++
		}

		results = append(results, AmplitudePoint{Param: param, Values: values})
	}

	return results, nil
}

func AmplitudeToASCII(data []AmplitudePoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
				continue
			}
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
	}
	if !foundFirst {
		return ""
	}

	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}

		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
