package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/redis/go-redis/v9"
	"github.com/zeu5/pathfinder-rl/util"
)

// Recorder stores run summaries
type Recorder interface {
	Record(context.Context, *Summary) error
}

// FileRecorder writes every summary as <dir>/<name>_<id>.json
type FileRecorder struct {
	dir string
}

var _ Recorder = &FileRecorder{}

func NewFileRecorder(dir string) *FileRecorder {
	return &FileRecorder{dir: dir}
}

func (f *FileRecorder) Path(s *Summary) string {
	return path.Join(f.dir, s.Name+"_"+s.ID.String()+".json")
}

func (f *FileRecorder) Record(_ context.Context, s *Summary) error {
	return util.SaveJson(f.Path(s), s)
}

// History gives back the summaries recorded so far
type History interface {
	Recent(context.Context, int) ([]*Summary, error)
}

// RedisRecorder appends the summaries as json to a redis list
type RedisRecorder struct {
	client *redis.Client
	key    string
}

var _ Recorder = &RedisRecorder{}
var _ History = &RedisRecorder{}

func NewRedisRecorder(addr, key string) *RedisRecorder {
	return &RedisRecorder{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		key: key,
	}
}

func (r *RedisRecorder) Record(ctx context.Context, s *Summary) error {
	bs, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.client.RPush(ctx, r.key, bs).Err(); err != nil {
		return fmt.Errorf("recording summary %s: %w", s.ID, err)
	}
	return nil
}

// Recent returns the last n summaries, oldest first
func (r *RedisRecorder) Recent(ctx context.Context, n int) ([]*Summary, error) {
	if n <= 0 {
		return []*Summary{}, nil
	}
	vals, err := r.client.LRange(ctx, r.key, int64(-n), -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*Summary, 0, len(vals))
	for _, v := range vals {
		s := &Summary{}
		if err := json.Unmarshal([]byte(v), s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *RedisRecorder) Close() error {
	return r.client.Close()
}

// MultiRecorder records to all of its recorders, attempting every one of them
type MultiRecorder []Recorder

func (m MultiRecorder) Record(ctx context.Context, s *Summary) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
