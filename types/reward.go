package types

import "fmt"

// RewardKind tags what a cell holds. A cell holds at most one kind.
type RewardKind int

const (
	Empty RewardKind = iota
	Treasure
	Hazard
)

func (k RewardKind) String() string {
	switch k {
	case Treasure:
		return "Treasure"
	case Hazard:
		return "Hazard"
	}
	return "Empty"
}

// Reward is the content of a cell: Empty, Treasure(value) or Hazard(value)
type Reward struct {
	Kind  RewardKind `json:"kind"`
	Value float64    `json:"value"`
}

func NoReward() Reward {
	return Reward{Kind: Empty}
}

func TreasureOf(value float64) Reward {
	return Reward{Kind: Treasure, Value: value}
}

func HazardOf(value float64) Reward {
	return Reward{Kind: Hazard, Value: value}
}

func (r Reward) IsEmpty() bool {
	return r.Kind == Empty
}

func (r Reward) String() string {
	if r.IsEmpty() {
		return "Empty"
	}
	return fmt.Sprintf("%s(%g)", r.Kind, r.Value)
}
