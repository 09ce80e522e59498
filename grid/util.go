package grid

import (
	"path"
	"strconv"

	"github.com/zeu5/pathfinder-rl/types"
	"github.com/zeu5/pathfinder-rl/util"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// GridDataSet counts the visits of every node over the episodes of a run
type GridDataSet struct {
	Visits map[types.Cell]int
	Height int
	Width  int
}

var _ plotter.GridXYZ = &GridDataSet{}

func newGridDataSet(height, width int) *GridDataSet {
	return &GridDataSet{
		Visits: make(map[types.Cell]int),
		Height: height,
		Width:  width,
	}
}

func (g *GridDataSet) Dims() (int, int) {
	return g.Width, g.Height
}

func (g *GridDataSet) Z(j, i int) float64 {
	return float64(g.Visits[types.Cell{Row: i, Col: j}])
}

func (g *GridDataSet) X(j int) float64 {
	return float64(j)
}

func (g *GridDataSet) Y(i int) float64 {
	return float64(i)
}

func (g *GridDataSet) Min() float64 {
	if len(g.Visits) < g.Height*g.Width {
		return 0
	}
	min := -1
	for _, count := range g.Visits {
		if min < 0 || count < min {
			min = count
		}
	}
	return float64(min)
}

func (g *GridDataSet) Max() float64 {
	max := 0
	for _, count := range g.Visits {
		if count > max {
			max = count
		}
	}
	return float64(max)
}

type cellVisits struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Visits int `json:"visits"`
}

func (g *GridDataSet) records() []cellVisits {
	out := make([]cellVisits, 0, len(g.Visits))
	for i := 0; i < g.Height; i++ {
		for j := 0; j < g.Width; j++ {
			if v, ok := g.Visits[types.Cell{Row: i, Col: j}]; ok {
				out = append(out, cellVisits{Row: i, Col: j, Visits: v})
			}
		}
	}
	return out
}

func MergeGridDatasets(dataSets []types.DataSet) types.DataSet {
	newDataset := newGridDataSet(0, 0)
	for _, d := range dataSets {
		dGrid := d.(*GridDataSet)
		if dGrid.Height > newDataset.Height {
			newDataset.Height = dGrid.Height
		}
		if dGrid.Width > newDataset.Width {
			newDataset.Width = dGrid.Width
		}
		for c, visits := range dGrid.Visits {
			newDataset.Visits[c] += visits
		}
	}
	return newDataset
}

// VisitAnalyzer counts how often every node is entered during training
type VisitAnalyzer struct {
	height  int
	width   int
	dataSet *GridDataSet
}

var _ types.Analyzer = &VisitAnalyzer{}

func NewVisitAnalyzer(g *GridEnvironment) *VisitAnalyzer {
	return &VisitAnalyzer{
		height:  g.Height,
		width:   g.Width,
		dataSet: newGridDataSet(g.Height, g.Width),
	}
}

func (v *VisitAnalyzer) Analyze(_ int, _ int, _ string, trace *types.Trace, _ types.EpisodeStats) {
	for _, c := range trace.Positions() {
		v.dataSet.Visits[c] += 1
	}
}

func (v *VisitAnalyzer) DataSet() types.DataSet {
	out := newGridDataSet(v.height, v.width)
	for c, count := range v.dataSet.Visits {
		out.Visits[c] = count
	}
	return out
}

func (v *VisitAnalyzer) Reset() {
	v.dataSet = newGridDataSet(v.height, v.width)
}

// GridPlotComparator records the visits of every experiment as json and draws them as a heat map.
// The visits of all the runs so far are merged and drawn as well.
func GridPlotComparator(figPath string) types.Comparator {
	merged := make(map[string]types.DataSet)
	return func(run int, s []string, ds []types.DataSet) {
		for i := 0; i < len(s); i++ {
			name := s[i]
			dataSet := ds[i].(*GridDataSet)
			saveVisits(path.Join(figPath, strconv.Itoa(run)+"_"+name+"_visits"), name, dataSet)

			if prev, ok := merged[name]; ok {
				merged[name] = MergeGridDatasets([]types.DataSet{prev, dataSet})
			} else {
				merged[name] = MergeGridDatasets([]types.DataSet{dataSet})
			}
			saveVisits(path.Join(figPath, "all_"+name+"_visits"), name, merged[name].(*GridDataSet))
		}
	}
}

func saveVisits(prefix, name string, dataSet *GridDataSet) {
	util.SaveJson(prefix+".json", dataSet.records())

	if dataSet.Max() == dataSet.Min() {
		return
	}
	p := plot.New()
	p.Title.Text = name
	p.Add(plotter.NewHeatMap(dataSet, palette.Heat(20, 1)))
	p.Save(4*vg.Inch, 4*vg.Inch, prefix+".png")
}
