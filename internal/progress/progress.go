// Package progress computes completion percentages over a topic hierarchy.
//
// Interior nodes may carry their own completed/total counts, but those are
// advisory. Every percentage is recomputed from the leaves so a stale parent
// value can never disagree with its children.
package progress

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned for nodes with negative counts, an empty
// id, or a leaf whose completed count exceeds its total.
var ErrInvalidArgument = errors.New("invalid argument")

// TopicNode is a topic or subtopic in the curriculum hierarchy.
type TopicNode struct {
	ID                 string
	Title              string
	Description        string
	TotalQuestions     int
	CompletedQuestions int
	Children           []TopicNode
}

// IsLeaf reports whether the node has no children.
func (n TopicNode) IsLeaf() bool { return len(n.Children) == 0 }

// Counts is a completed/total pair summed over leaves.
type Counts struct {
	Completed int
	Total     int
}

// Percentage returns Completed/Total*100, or 0 when Total is 0.
func (c Counts) Percentage() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Completed) / float64(c.Total) * 100
}

// Validate checks node and all of its descendants.
func Validate(node TopicNode) error {
	if node.ID == "" {
		return fmt.Errorf("%w: node %q has an empty id", ErrInvalidArgument, node.Title)
	}
	if node.TotalQuestions < 0 || node.CompletedQuestions < 0 {
		return fmt.Errorf("%w: node %q has negative counts (%d/%d)",
			ErrInvalidArgument, node.ID, node.CompletedQuestions, node.TotalQuestions)
	}
	if node.IsLeaf() && node.CompletedQuestions > node.TotalQuestions {
		return fmt.Errorf("%w: leaf %q has completed %d > total %d",
			ErrInvalidArgument, node.ID, node.CompletedQuestions, node.TotalQuestions)
	}
	for _, c := range node.Children {
		if err := Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// Aggregate returns the completed and total counts of node recomputed from
// its leaves. A leaf returns its own counts.
func Aggregate(node TopicNode) (Counts, error) {
	if err := Validate(node); err != nil {
		return Counts{}, err
	}
	return sumLeaves(node), nil
}

func sumLeaves(node TopicNode) Counts {
	if node.IsLeaf() {
		return Counts{Completed: node.CompletedQuestions, Total: node.TotalQuestions}
	}
	var c Counts
	for _, child := range node.Children {
		cc := sumLeaves(child)
		c.Completed += cc.Completed
		c.Total += cc.Total
	}
	return c
}

// Percentage returns the completion percentage of node in [0, 100].
func Percentage(node TopicNode) (float64, error) {
	c, err := Aggregate(node)
	if err != nil {
		return 0, err
	}
	return c.Percentage(), nil
}

// Overall returns the completion percentage across a forest of topics,
// computed as if the topics were children of a single root.
func Overall(forest []TopicNode) (float64, error) {
	var c Counts
	for _, t := range forest {
		tc, err := Aggregate(t)
		if err != nil {
			return 0, err
		}
		c.Completed += tc.Completed
		c.Total += tc.Total
	}
	return c.Percentage(), nil
}

// Display rounds a percentage to the nearest whole number for presentation.
func Display(pct float64) int {
	return int(math.Round(pct))
}
