package types

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/gosuri/uilive"
	"github.com/zeu5/pathfinder-rl/util"
)

type experimentRunConfig struct {
	// execution configuration
	CurrentRun int
	Episodes   int
	Analyzers  []Analyzer
	Context    context.Context

	// record flags
	RecordTraces bool
	RecordPolicy bool

	ReportSavePath string

	// progress output
	Out               io.Writer
	LongestExpNameLen int
}

// PolicyRecorder is implemented by learners that can dump their value table
type PolicyRecorder interface {
	Record(string) error
}

// Experiment encapsulates a learner and the environment it is trained on
type Experiment struct {
	Name        string
	learner     Learner
	environment Environment
}

// NewExperiment creates a new experiment instance
func NewExperiment(name string, learner Learner, environment Environment) *Experiment {
	return &Experiment{
		Name:        name,
		learner:     learner,
		environment: environment,
	}
}

// ExperimentResult is the outcome of one run of an experiment
type ExperimentResult struct {
	Name     string         `json:"name"`
	Run      int            `json:"run"`
	Episodes int            `json:"episodes"`
	Stats    []EpisodeStats `json:"-"`
	Path     *Path          `json:"path"`
	Duration time.Duration  `json:"duration"`
	Err      error          `json:"-"`
}

func (r *ExperimentResult) IsError() bool {
	return r.Err != nil
}

func (e *Experiment) recordTrace(rConfig *experimentRunConfig, trace *Trace) {
	tracesFile := path.Join(rConfig.ReportSavePath, "traces", e.Name+"_"+strconv.Itoa(rConfig.CurrentRun)+".jsonl")
	bs, err := json.Marshal(trace)
	if err != nil {
		return
	}
	util.AppendToFile(tracesFile, string(bs))
}

// Run the experiment for the configured number of episodes, feeding every trace to the analyzers.
// Any learner error aborts the experiment: errors from the learner are precondition violations.
func (e *Experiment) Run(rConfig *experimentRunConfig) *ExperimentResult {
	result := &ExperimentResult{
		Name:  e.Name,
		Run:   rConfig.CurrentRun,
		Stats: make([]EpisodeStats, 0, rConfig.Episodes),
	}
	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
	}()

	writer := uilive.New()
	if rConfig.Out != nil {
		writer.Out = rConfig.Out
	}
	writer.Start()
	defer writer.Stop()

	reachedGoal := 0
	for episode := 0; episode < rConfig.Episodes; episode++ {
		select {
		case <-rConfig.Context.Done():
			result.Err = rConfig.Context.Err()
			return result
		default:
		}

		trace, stats, err := e.runEpisode(episode)
		if err != nil {
			result.Err = fmt.Errorf("experiment %s, run %d, episode %d: %w", e.Name, rConfig.CurrentRun, episode, err)
			fmt.Fprintf(writer, "Exp:%*s, Run:%d, Error: %s\n", rConfig.LongestExpNameLen, e.Name, rConfig.CurrentRun, err)
			writer.Flush()
			return result
		}
		result.Stats = append(result.Stats, stats)
		result.Episodes += 1
		if stats.ReachedGoal {
			reachedGoal += 1
		}

		if rConfig.RecordTraces {
			e.recordTrace(rConfig, trace)
		}
		for _, a := range rConfig.Analyzers {
			a.Analyze(rConfig.CurrentRun, episode, e.Name, trace, stats)
		}

		fmt.Fprintf(writer, "Exp:%*s, Run:%d, Eps:%*d/%d, Steps:%6d, Reward:%10.2f, Goal:%5.1f%%, States:%d\n",
			rConfig.LongestExpNameLen, e.Name, rConfig.CurrentRun,
			len(strconv.Itoa(rConfig.Episodes)), episode+1, rConfig.Episodes,
			stats.Steps, stats.Reward, float32(reachedGoal)/float32(episode+1)*100, stats.States)
	}
	writer.Flush()

	p, err := e.learner.Solve(e.environment)
	if err != nil {
		result.Err = fmt.Errorf("experiment %s, run %d, solve: %w", e.Name, rConfig.CurrentRun, err)
		return result
	}
	result.Path = p

	if rConfig.RecordPolicy {
		if recorder, ok := e.learner.(PolicyRecorder); ok {
			recorder.Record(path.Join(rConfig.ReportSavePath, "policies", e.Name+"_"+strconv.Itoa(rConfig.CurrentRun)))
		}
	}
	return result
}

func (e *Experiment) runEpisode(episode int) (trace *Trace, stats EpisodeStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return e.learner.RunEpisode(episode, e.environment)
}

// Reset forgets what the learner learned
func (e *Experiment) Reset() {
	e.learner.Reset()
}

// Generic Dataset that contains information after processing the traces
type DataSet interface{}

// Analyzer compresses the information in the traces to a DataSet
type Analyzer interface {
	// Run, episode, experiment, trace, episode stats
	Analyze(int, int, string, *Trace, EpisodeStats)
	// Resulting dataset
	DataSet() DataSet
	// Reset the analyzer
	Reset()
}

// Comparator differentiates between different datasets with associated names
// run, experiment names, datasets
type Comparator func(int, []string, []DataSet)

func NoopComparator() Comparator {
	return func(_ int, _ []string, _ []DataSet) {}
}

// ComparisonConfig contains the configuration for the comparison
type ComparisonConfig struct {
	Runs     int // number of runs
	Episodes int // number of episodes

	RecordPath string // path to store the results

	// record flags
	RecordTraces bool
	RecordPolicy bool

	// progress output, stdout if nil
	Out io.Writer
}

// Comparison contains the different experiments to compare
// The traces obtained from the experiments are analyzed
// The analyzed datasets are then compared
type Comparison struct {
	Experiments []*Experiment
	analyzers   map[string]Analyzer
	comparators map[string]Comparator
	cConfig     *ComparisonConfig
	results     []*ExperimentResult
}

// NewComparison creates a comparison instance and the folders it records into
func NewComparison(config *ComparisonConfig) (*Comparison, error) {
	foldersToCreate := []string{""}
	if config.RecordTraces {
		foldersToCreate = append(foldersToCreate, "traces")
	}
	if config.RecordPolicy {
		foldersToCreate = append(foldersToCreate, "policies")
	}
	for _, s := range foldersToCreate {
		if err := os.MkdirAll(path.Join(config.RecordPath, s), 0755); err != nil {
			return nil, err
		}
	}

	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyzers:   make(map[string]Analyzer),
		comparators: make(map[string]Comparator),
		cConfig:     config,
		results:     make([]*ExperimentResult, 0),
	}, nil
}

// AddAnalysis adds an analyzer and comparator to the comparison
func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyzers[name] = analyzer
	c.comparators[name] = comparator
}

// Add experiments to compare
func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

// Results of all the runs so far
func (c *Comparison) Results() []*ExperimentResult {
	return c.results
}

// record the configuration of the comparison
func (c *Comparison) recordConfig() error {
	cfg := c.cConfig
	out := make(map[string]interface{})
	out["runs"] = cfg.Runs
	out["episodes"] = cfg.Episodes
	out["record_traces"] = cfg.RecordTraces
	out["record_policy"] = cfg.RecordPolicy

	experiments := make([]string, 0)
	for _, e := range c.Experiments {
		experiments = append(experiments, e.Name)
	}
	out["experiments"] = experiments

	analyzers := make([]string, 0)
	for name := range c.analyzers {
		analyzers = append(analyzers, name)
	}
	out["analyzers"] = analyzers

	return util.SaveJson(path.Join(cfg.RecordPath, "comparison_config.json"), out)
}

// Run the comparison. Experiment errors do not stop the other experiments;
// they are joined into the returned error.
func (c *Comparison) Run(ctx context.Context) error {
	if err := c.recordConfig(); err != nil {
		return err
	}

	longestNameLen := 0
	for _, e := range c.Experiments {
		if len(e.Name) > longestNameLen {
			longestNameLen = len(e.Name)
		}
	}

	var errs []error
	for run := 0; run < c.cConfig.Runs; run++ {
		datasets := make(map[string][]DataSet)
		for name := range c.analyzers {
			datasets[name] = make([]DataSet, len(c.Experiments))
		}

		names := make([]string, len(c.Experiments))
		for i, e := range c.Experiments {
			select {
			case <-ctx.Done():
				return errors.Join(append(errs, ctx.Err())...)
			default:
			}
			result := e.Run(c.prepareRunConfig(ctx, run, longestNameLen))
			c.results = append(c.results, result)
			if result.IsError() {
				errs = append(errs, result.Err)
			}
			for name, a := range c.analyzers {
				datasets[name][i] = a.DataSet()
				a.Reset()
			}
			names[i] = e.Name
			e.Reset()
		}
		for name, comp := range c.comparators {
			comp(run, names, datasets[name])
		}
	}
	if err := util.SaveJson(path.Join(c.cConfig.RecordPath, "results.json"), c.results); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// prepare the run configuration for the experiment
func (c *Comparison) prepareRunConfig(ctx context.Context, run int, longestExpNameLen int) *experimentRunConfig {
	rCfg := &experimentRunConfig{
		CurrentRun:     run,
		Episodes:       c.cConfig.Episodes,
		Analyzers:      make([]Analyzer, 0),
		RecordTraces:   c.cConfig.RecordTraces,
		RecordPolicy:   c.cConfig.RecordPolicy,
		ReportSavePath: c.cConfig.RecordPath,
		Context:        ctx,
		Out:            c.cConfig.Out,

		LongestExpNameLen: longestExpNameLen,
	}
	for _, a := range c.analyzers {
		rCfg.Analyzers = append(rCfg.Analyzers, a)
	}
	return rCfg
}
