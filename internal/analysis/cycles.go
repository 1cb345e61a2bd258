package analysis

import (
	"github.com/san-kum/predsim/internal/dynamo"
)

// Peaks returns the indices of strict local maxima. Plateaus count once,
// at their first index.
func Peaks(values []float64) []int {
	var peaks []int
	for i := 1; i < len(values)-1; i++ {
		if values[i] <= values[i-1] {
			continue
		}
		j := i
		for j < len(values)-1 && values[j+1] == values[i] {
			j++
		}
		if j < len(values)-1 && values[j+1] < values[i] {
			peaks = append(peaks, i)
		}
		i = j
	}
	return peaks
}

// Period is the mean spacing between successive peaks of values, or 0 when
// fewer than two peaks exist.
func Period(times, values []float64) float64 {
	peaks := Peaks(values)
	if len(peaks) < 2 {
		return 0
	}
	return (times[peaks[len(peaks)-1]] - times[peaks[0]]) / float64(len(peaks)-1)
}

type SeriesSummary struct {
	Label  string
	Min    float64
	Max    float64
	Mean   float64
	Final  float64
	Cycles int
	Period float64
}

type Summary struct {
	Samples   int
	Duration  float64
	Predators SeriesSummary
	Prey      SeriesSummary
	// PhaseLag is how far the predator peaks trail the prey peaks.
	PhaseLag float64
}

func summarizeSeries(times []float64, s dynamo.Series) SeriesSummary {
	out := SeriesSummary{Label: s.Label}
	if len(s.Values) == 0 {
		return out
	}
	out.Min, out.Max = s.Values[0], s.Values[0]
	for _, v := range s.Values {
		out.Min = min(out.Min, v)
		out.Max = max(out.Max, v)
	}
	out.Mean = mean(s.Values)
	out.Final = s.Values[len(s.Values)-1]
	out.Cycles = len(Peaks(s.Values))
	out.Period = Period(times, s.Values)
	return out
}

func Summarize(ts *dynamo.TimeSeries) Summary {
	sum := Summary{
		Samples:   ts.Len(),
		Predators: summarizeSeries(ts.Times, ts.Predators),
		Prey:      summarizeSeries(ts.Times, ts.Prey),
	}
	if ts.Len() > 0 {
		sum.Duration = ts.Times[ts.Len()-1] - ts.Times[0]
	}

	predPeaks := Peaks(ts.Predators.Values)
	preyPeaks := Peaks(ts.Prey.Values)
	if len(predPeaks) > 0 && len(preyPeaks) > 0 {
		// first predator peak after the first prey peak
		preyT := ts.Times[preyPeaks[0]]
		for _, i := range predPeaks {
			if ts.Times[i] >= preyT {
				sum.PhaseLag = ts.Times[i] - preyT
				break
			}
		}
	}
	return sum
}
