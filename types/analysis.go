package types

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SeriesAnalyzer records one value per episode
type SeriesAnalyzer struct {
	extract func(*Trace, EpisodeStats) float64
	series  []float64
}

var _ Analyzer = &SeriesAnalyzer{}

func NewSeriesAnalyzer(extract func(*Trace, EpisodeStats) float64) *SeriesAnalyzer {
	return &SeriesAnalyzer{
		extract: extract,
		series:  make([]float64, 0),
	}
}

// EpisodeReward records the cumulative reward of every episode
func EpisodeReward() *SeriesAnalyzer {
	return NewSeriesAnalyzer(func(_ *Trace, s EpisodeStats) float64 {
		return s.Reward
	})
}

// EpisodeLength records the number of steps of every episode
func EpisodeLength() *SeriesAnalyzer {
	return NewSeriesAnalyzer(func(_ *Trace, s EpisodeStats) float64 {
		return float64(s.Steps)
	})
}

// StateSpace records the number of learning states materialized after every episode
func StateSpace() *SeriesAnalyzer {
	return NewSeriesAnalyzer(func(_ *Trace, s EpisodeStats) float64 {
		return float64(s.States)
	})
}

func (a *SeriesAnalyzer) Analyze(_ int, _ int, _ string, t *Trace, s EpisodeStats) {
	a.series = append(a.series, a.extract(t, s))
}

func (a *SeriesAnalyzer) DataSet() DataSet {
	out := make([]float64, len(a.series))
	copy(out, a.series)
	return out
}

func (a *SeriesAnalyzer) Reset() {
	a.series = make([]float64, 0)
}

// TracePredicate is checked against every episode trace
type TracePredicate func(*Trace) bool

// PredicateAnalyzer counts the episodes whose trace satisfies the predicate (cumulative)
type PredicateAnalyzer struct {
	predicate TracePredicate
	count     int
	counts    []float64
}

var _ Analyzer = &PredicateAnalyzer{}

func NewPredicateAnalyzer(p TracePredicate) *PredicateAnalyzer {
	return &PredicateAnalyzer{
		predicate: p,
		counts:    make([]float64, 0),
	}
}

func (a *PredicateAnalyzer) Analyze(_ int, _ int, _ string, t *Trace, _ EpisodeStats) {
	if a.predicate(t) {
		a.count += 1
	}
	a.counts = append(a.counts, float64(a.count))
}

func (a *PredicateAnalyzer) DataSet() DataSet {
	out := make([]float64, len(a.counts))
	copy(out, a.counts)
	return out
}

func (a *PredicateAnalyzer) Reset() {
	a.count = 0
	a.counts = make([]float64, 0)
}

// Smooth returns the trailing moving average of xs over window values
func Smooth(xs []float64, window int) []float64 {
	if window <= 1 {
		out := make([]float64, len(xs))
		copy(out, xs)
		return out
	}
	out := make([]float64, len(xs))
	for i := range xs {
		from := i - window + 1
		if from < 0 {
			from = 0
		}
		out[i] = stat.Mean(xs[from:i+1], nil)
	}
	return out
}

// SeriesPlotter plots the (smoothed) per-episode series of every experiment on one figure
// and prints the mean over the last window episodes
func SeriesPlotter(plotPath, name, yLabel string, window int) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, names []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = name
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = yLabel
		for i := 0; i < len(names); i++ {
			series, ok := ds[i].([]float64)
			if !ok || len(series) == 0 {
				continue
			}
			smoothed := Smooth(series, window)
			points := make(plotter.XYs, len(smoothed))
			for j, v := range smoothed {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)

			tail := series
			if window > 0 && len(series) > window {
				tail = series[len(series)-window:]
			}
			fmt.Printf("%s: mean over last %d episodes: %.2f (std %.2f) for experiment: %s\n",
				name, len(tail), stat.Mean(tail, nil), stat.StdDev(tail, nil), names[i])
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_"+name+".png"))
	}
}
