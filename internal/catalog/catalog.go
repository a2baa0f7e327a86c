// Package catalog holds the topic hierarchy and the problem bank that
// practice sessions draw from.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mathforge/mathforge/internal/progress"
	"github.com/mathforge/mathforge/internal/session"
)

// ErrUnknownTopic is returned when a topic or subtopic id is not in the
// catalog.
var ErrUnknownTopic = errors.New("unknown topic")

// Catalog is an immutable, validated view of topics and problems.
type Catalog struct {
	topics   []progress.TopicNode
	byID     map[string]progress.TopicNode
	parent   map[string]string
	leaves   []progress.TopicNode
	problems map[string][]session.Problem
}

// New validates the forest and bank and builds their indices. The bank maps
// a leaf (subtopic) id to its ordered problems.
func New(topics []progress.TopicNode, bank map[string][]session.Problem) (*Catalog, error) {
	if err := validate(topics, bank); err != nil {
		return nil, err
	}

	c := &Catalog{
		topics:   retotal(topics, bank),
		byID:     make(map[string]progress.TopicNode),
		parent:   make(map[string]string),
		problems: make(map[string][]session.Problem, len(bank)),
	}
	var walk func(n progress.TopicNode, parent string)
	walk = func(n progress.TopicNode, parent string) {
		c.byID[n.ID] = n
		if parent != "" {
			c.parent[n.ID] = parent
		}
		if n.IsLeaf() {
			c.leaves = append(c.leaves, n)
		}
		for _, ch := range n.Children {
			walk(ch, n.ID)
		}
	}
	for _, t := range c.topics {
		walk(t, "")
	}
	for id, ps := range bank {
		c.problems[id] = append([]session.Problem(nil), ps...)
	}
	return c, nil
}

// Topics returns a copy of the topic forest.
func (c *Catalog) Topics() []progress.TopicNode { return cloneForest(c.topics) }

// Topic returns the node with the given id.
func (c *Catalog) Topic(id string) (progress.TopicNode, bool) {
	n, ok := c.byID[id]
	if !ok {
		return progress.TopicNode{}, false
	}
	return cloneNode(n), true
}

// Parent returns the id of a node's parent, or "" for top-level topics.
func (c *Catalog) Parent(id string) string { return c.parent[id] }

// Leaves returns all subtopics in forest order.
func (c *Catalog) Leaves() []progress.TopicNode {
	return append([]progress.TopicNode(nil), c.leaves...)
}

// Problems returns the problem set for a subtopic.
func (c *Catalog) Problems(subtopicID string) ([]session.Problem, error) {
	n, ok := c.byID[subtopicID]
	if !ok || !n.IsLeaf() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, subtopicID)
	}
	ps := c.problems[subtopicID]
	out := make([]session.Problem, len(ps))
	for i, p := range ps {
		p.Hints = append([]string(nil), p.Hints...)
		out[i] = p
	}
	return out, nil
}

// ProblemCount returns the number of bank problems for a subtopic.
func (c *Catalog) ProblemCount(subtopicID string) int { return len(c.problems[subtopicID]) }

// WithCompleted returns a copy of the forest with each leaf's completed
// count replaced by counts[leafID], clamped to the leaf total. Leaves
// missing from counts are reset to zero.
func (c *Catalog) WithCompleted(counts map[string]int) []progress.TopicNode {
	out := cloneForest(c.topics)
	for i := range out {
		overlay(&out[i], counts)
	}
	return out
}

func overlay(n *progress.TopicNode, counts map[string]int) {
	if n.IsLeaf() {
		done := counts[n.ID]
		if done < 0 {
			done = 0
		}
		if done > n.TotalQuestions {
			done = n.TotalQuestions
		}
		n.CompletedQuestions = done
		return
	}
	for i := range n.Children {
		overlay(&n.Children[i], counts)
	}
}

// Merge returns a new catalog with extra problems appended to the bank.
func (c *Catalog) Merge(extra map[string][]session.Problem) (*Catalog, error) {
	bank := make(map[string][]session.Problem, len(c.problems))
	for id, ps := range c.problems {
		bank[id] = append([]session.Problem(nil), ps...)
	}
	for id, ps := range extra {
		bank[id] = append(bank[id], ps...)
	}
	return New(c.topics, bank)
}

// validate performs all structural checks on the forest and bank.
// Returns a combined error describing all problems found, or nil if valid.
func validate(topics []progress.TopicNode, bank map[string][]session.Problem) error {
	var errs []string

	ids := make(map[string]bool)
	leaves := make(map[string]bool)
	var walk func(n progress.TopicNode)
	walk = func(n progress.TopicNode) {
		if ids[n.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", n.ID))
		}
		ids[n.ID] = true
		if n.IsLeaf() {
			leaves[n.ID] = true
		}
		for _, ch := range n.Children {
			walk(ch)
		}
	}
	for _, t := range topics {
		if err := progress.Validate(t); err != nil {
			errs = append(errs, err.Error())
		}
		walk(t)
	}

	problemIDs := make(map[string]string)
	subtopics := make([]string, 0, len(bank))
	for id := range bank {
		subtopics = append(subtopics, id)
	}
	sort.Strings(subtopics)
	for _, sub := range subtopics {
		if !leaves[sub] {
			errs = append(errs, fmt.Sprintf("problems reference unknown subtopic %q", sub))
		}
		for _, p := range bank[sub] {
			if prev, ok := problemIDs[p.ID]; ok {
				errs = append(errs, fmt.Sprintf("problem %q appears in %q and %q", p.ID, prev, sub))
			}
			problemIDs[p.ID] = sub
		}
		if len(bank[sub]) > 0 {
			if err := session.ValidateProblems(bank[sub]); err != nil {
				errs = append(errs, fmt.Sprintf("subtopic %q: %v", sub, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// retotal returns a copy of the forest whose leaf totals are the sizes of
// their problem sets, since a learner can complete at most every problem in
// the bank. Interior totals are the leaf sums and completed counts are
// clamped to the new totals.
func retotal(forest []progress.TopicNode, bank map[string][]session.Problem) []progress.TopicNode {
	out := cloneForest(forest)
	var walk func(n *progress.TopicNode)
	walk = func(n *progress.TopicNode) {
		if n.IsLeaf() {
			n.TotalQuestions = len(bank[n.ID])
		} else {
			n.TotalQuestions = 0
			for i := range n.Children {
				walk(&n.Children[i])
				n.TotalQuestions += n.Children[i].TotalQuestions
			}
		}
		n.CompletedQuestions = min(n.CompletedQuestions, n.TotalQuestions)
	}
	for i := range out {
		walk(&out[i])
	}
	return out
}

func cloneForest(forest []progress.TopicNode) []progress.TopicNode {
	out := make([]progress.TopicNode, len(forest))
	for i, n := range forest {
		out[i] = cloneNode(n)
	}
	return out
}

func cloneNode(n progress.TopicNode) progress.TopicNode {
	if len(n.Children) > 0 {
		n.Children = cloneForest(n.Children)
	}
	return n
}
