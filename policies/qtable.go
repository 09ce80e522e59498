package policies

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/zeu5/pathfinder-rl/types"
)

var (
	ErrMissingRow    = errors.New("q-table row was never expanded")
	ErrIllegalAction = errors.New("action is not legal from this state")
)

// Row holds the value estimates of the legal actions of one state
type Row map[types.Direction]float64

// Max returns the action with the highest value.
// Ties go to the first direction in Up, Down, Left, Right order.
// ok is false for an empty row.
func (r Row) Max() (types.Direction, float64, bool) {
	found := false
	var best types.Direction
	bestVal := 0.0
	for _, d := range types.AllDirections {
		v, ok := r[d]
		if !ok {
			continue
		}
		if !found || v > bestVal {
			best = d
			bestVal = v
			found = true
		}
	}
	return best, bestVal, found
}

// Directions of the row in direction order
func (r Row) Directions() []types.Direction {
	out := make([]types.Direction, 0, len(r))
	for _, d := range types.AllDirections {
		if _, ok := r[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// LegalRow builds a zero-valued row for the legal actions from c.
// The goal is terminal and gets an empty row.
func LegalRow(env types.Environment, c types.Cell) Row {
	row := make(Row)
	if env.IsGoal(c) {
		return row
	}
	for _, d := range types.LegalDirections(env, c) {
		row[d] = 0
	}
	return row
}

// QTable maps learning states to action values.
// Rows are created lazily the first time a state is visited and are never removed.
type QTable struct {
	table map[types.StateKey]Row
}

func NewQTable() *QTable {
	return &QTable{
		table: make(map[types.StateKey]Row),
	}
}

// Expand materializes the row of key if it does not exist yet and returns it.
// Calling it again for the same key returns the existing row untouched.
func (q *QTable) Expand(key types.StateKey, env types.Environment) Row {
	if row, ok := q.table[key]; ok {
		return row
	}
	row := LegalRow(env, key.Position)
	q.table[key] = row
	return row
}

func (q *QTable) Row(key types.StateKey) (Row, error) {
	row, ok := q.table[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRow, key.Hash())
	}
	return row, nil
}

func (q *QTable) HasState(key types.StateKey) bool {
	_, ok := q.table[key]
	return ok
}

func (q *QTable) Get(key types.StateKey, action types.Direction) (float64, error) {
	row, err := q.Row(key)
	if err != nil {
		return 0, err
	}
	val, ok := row[action]
	if !ok {
		return 0, fmt.Errorf("%w: %s from %s", ErrIllegalAction, action, key.Hash())
	}
	return val, nil
}

// Set updates an existing entry. It never creates rows or actions.
func (q *QTable) Set(key types.StateKey, action types.Direction, val float64) error {
	row, err := q.Row(key)
	if err != nil {
		return err
	}
	if _, ok := row[action]; !ok {
		return fmt.Errorf("%w: %s from %s", ErrIllegalAction, action, key.Hash())
	}
	row[action] = val
	return nil
}

// Max of the row of key
func (q *QTable) Max(key types.StateKey) (types.Direction, float64, error) {
	row, err := q.Row(key)
	if err != nil {
		return 0, 0, err
	}
	d, v, ok := row.Max()
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", types.ErrNoLegalActions, key.Hash())
	}
	return d, v, nil
}

// Size is the number of states materialized so far
func (q *QTable) Size() int {
	return len(q.table)
}

// States sorted by their hash
func (q *QTable) States() []types.StateKey {
	out := make([]types.StateKey, 0, len(q.table))
	for k := range q.table {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hash() < out[j].Hash() })
	return out
}

type qTableEntry struct {
	State   string `json:"state"`
	Entries Row    `json:"entries"`
}

// Record dumps the table as json lines at path.jsonl.
// The dump is for inspection only.
func (q *QTable) Record(path string) error {
	file, err := os.Create(path + ".jsonl")
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, state := range q.States() {
		bs, err := json.Marshal(qTableEntry{State: state.Hash(), Entries: q.table[state]})
		if err != nil {
			return err
		}
		writer.Write(bs)
		writer.WriteString("\n")
	}
	return writer.Flush()
}

func (q *QTable) String() string {
	b := new(strings.Builder)
	for _, state := range q.States() {
		b.WriteString(state.Hash())
		b.WriteString("\n")
		row := q.table[state]
		for _, d := range row.Directions() {
			fmt.Fprintf(b, "\t%s: %.4f\n", d, row[d])
		}
	}
	return b.String()
}
