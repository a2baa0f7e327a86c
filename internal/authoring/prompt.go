package authoring

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write A-Level mathematics practice problems.

Rules:
- Write problems for the given subtopic at a mix of difficulties.
- Use plain text for all math. Write powers with ^, e.g. x^2, and fractions with /.
- Each problem must have a single final answer that can be typed on one line.
- The solution field holds the final answer only, simplified, with no working.
- Give up to three hints. Each hint reveals a little more of the method and none gives the answer away.
- Award marks as an exam board would for the amount of working needed.
- Do not repeat any problem from the "existing problems" list.`

func buildUserMessage(in Input, n int, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", in.TopicTitle)
	fmt.Fprintf(&b, "Subtopic: %s\n", in.Subtopic.Title)
	if in.Subtopic.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", in.Subtopic.Description)
	}
	fmt.Fprintf(&b, "Number of problems: %d\n", n)

	b.WriteString("\nExisting problems:\n")
	b.WriteString(buildExisting(in.Existing, cfg.MaxExisting))

	return b.String()
}
