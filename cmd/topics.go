package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mathforge/mathforge/internal/catalog"
	"github.com/mathforge/mathforge/internal/progress"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Show topics, subtopics and completion percentages",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		demo, _ := cmd.Flags().GetBool("demo")

		var forest []progress.TopicNode
		if demo {
			forest = catalog.Demo()
		} else {
			env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			counts, err := loadCounts(cmd.Context(), env)
			if err != nil {
				return fmt.Errorf("load progress: %w", err)
			}
			forest = env.catalog.WithCompleted(counts)
		}

		reports, err := progress.BuildForest(forest)
		if err != nil {
			return err
		}
		overall, err := progress.Overall(forest)
		if err != nil {
			return err
		}

		if asJSON {
			return writeTopicsJSON(cmd.OutOrStdout(), reports, overall)
		}
		writeTopicsTable(cmd.OutOrStdout(), reports, overall)
		return nil
	},
}

type topicJSON struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Completed  int         `json:"completed"`
	Total      int         `json:"total"`
	Percentage float64     `json:"percentage"`
	Children   []topicJSON `json:"children,omitempty"`
}

func toTopicJSON(r progress.Report) topicJSON {
	t := topicJSON{
		ID:         r.ID,
		Title:      r.Title,
		Completed:  r.Counts.Completed,
		Total:      r.Counts.Total,
		Percentage: r.Percentage,
	}
	for _, c := range r.Children {
		t.Children = append(t.Children, toTopicJSON(c))
	}
	return t
}

func writeTopicsJSON(w io.Writer, reports []progress.Report, overall float64) error {
	out := struct {
		Overall float64     `json:"overall"`
		Topics  []topicJSON `json:"topics"`
	}{Overall: overall}
	for _, r := range reports {
		out.Topics = append(out.Topics, toTopicJSON(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTopicsTable(w io.Writer, reports []progress.Report, overall float64) {
	fmt.Fprintf(w, "Overall progress: %d%%\n\n", progress.Display(overall))
	fmt.Fprintf(w, "%-40s  %-28s  %9s  %5s\n", "Topic", "ID", "Done", "%")
	fmt.Fprintln(w, strings.Repeat("─", 88))

	var walk func(r progress.Report, depth int)
	walk = func(r progress.Report, depth int) {
		label := strings.Repeat("  ", depth) + r.Title
		fmt.Fprintf(w, "%-40s  %-28s  %4d/%-4d  %4d%%\n",
			truncate(label, 40), truncate(r.ID, 28),
			r.Counts.Completed, r.Counts.Total, progress.Display(r.Percentage))
		for _, c := range r.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range reports {
		walk(r, 0)
	}
}

// loadCounts returns the user's completed problem count per subtopic. An
// anonymous user has none.
func loadCounts(ctx context.Context, env *cliEnv) (map[string]int, error) {
	if !env.identity.SignedIn() {
		return map[string]int{}, nil
	}
	return env.store.ProgressRepo().CompletedCounts(ctx, env.identity.UserID)
}

func init() {
	topicsCmd.Flags().Bool("json", false, "Print the topic tree as JSON")
	topicsCmd.Flags().Bool("demo", false, "Use the built-in demo counts instead of your stored progress")
}
