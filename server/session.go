package server

import (
	"context"
	"sync"

	"github.com/zeu5/pathfinder-rl/grid"
	"github.com/zeu5/pathfinder-rl/policies"
	"github.com/zeu5/pathfinder-rl/report"
	"github.com/zeu5/pathfinder-rl/types"
)

// Session is one learner trained on one maze.
// All access goes through the lock so the table keeps a single writer.
type Session struct {
	Name string

	lock     *sync.Mutex
	env      *grid.GridEnvironment
	learner  *policies.QLearning
	stats    []types.EpisodeStats
	recorder report.Recorder
	history  report.History
}

// NewSession creates a session, recorder and history can be nil
func NewSession(name string, env *grid.GridEnvironment, params policies.Params, recorder report.Recorder, history report.History) (*Session, error) {
	learner, err := policies.NewQLearning(params)
	if err != nil {
		return nil, err
	}
	return &Session{
		Name:     name,
		lock:     new(sync.Mutex),
		env:      env,
		learner:  learner,
		stats:    make([]types.EpisodeStats, 0),
		recorder: recorder,
		history:  history,
	}, nil
}

// Train runs more episodes and returns the summary of these episodes.
// Episodes keep their global numbering across calls.
func (s *Session) Train(ctx context.Context, episodes int) (*report.Summary, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	newStats := make([]types.EpisodeStats, 0, episodes)
	for i := 0; i < episodes; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		_, stats, err := s.learner.RunEpisode(len(s.stats), s.env)
		if err != nil {
			return nil, err
		}
		s.stats = append(s.stats, stats)
		newStats = append(newStats, stats)
	}

	path, err := s.learner.Solve(s.env)
	if err != nil {
		return nil, err
	}
	summary := report.Summarize(s.Name, s.learner.Params(), newStats, path)
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func (s *Session) Solve() (*types.Path, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.learner.Solve(s.env)
}

// Stats summarizes every episode run so far
func (s *Session) Stats() *report.Summary {
	s.lock.Lock()
	defer s.lock.Unlock()
	return report.Summarize(s.Name, s.learner.Params(), s.stats, nil)
}

func (s *Session) Table() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.learner.Table().String()
}

func (s *Session) Render(path *types.Path) string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.env.Render(path)
}

// Runs returns the last n recorded summaries, ok is false without a history
func (s *Session) Runs(ctx context.Context, n int) ([]*report.Summary, bool, error) {
	if s.history == nil {
		return nil, false, nil
	}
	runs, err := s.history.Recent(ctx, n)
	return runs, true, err
}

// Reset forgets the learned table and the stats
func (s *Session) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.learner.Reset()
	s.stats = make([]types.EpisodeStats, 0)
}

func (s *Session) Maze() *grid.GridEnvironment {
	return s.env
}
