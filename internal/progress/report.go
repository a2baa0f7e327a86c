package progress

// Report is a recomputed view of a topic tree, suitable for rendering.
type Report struct {
	ID         string
	Title      string
	Counts     Counts
	Percentage float64
	Children   []Report
}

// Build validates node and returns its recomputed report tree. Interior
// counts in the result come from the leaves, never from the input node.
func Build(node TopicNode) (Report, error) {
	if err := Validate(node); err != nil {
		return Report{}, err
	}
	return build(node), nil
}

func build(node TopicNode) Report {
	r := Report{
		ID:     node.ID,
		Title:  node.Title,
		Counts: sumLeaves(node),
	}
	r.Percentage = r.Counts.Percentage()
	for _, c := range node.Children {
		r.Children = append(r.Children, build(c))
	}
	return r
}

// BuildForest builds a report for each topic in forest.
func BuildForest(forest []TopicNode) ([]Report, error) {
	out := make([]Report, 0, len(forest))
	for _, t := range forest {
		r, err := Build(t)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
