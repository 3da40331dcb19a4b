package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/tacit/internal/annotation"
	"github.com/abhisek/tacit/internal/taxonomy"
)

const systemPrompt = `You help people practice annotating sentences with Yosso's Community Cultural Wealth (CCT) categories. Explain expert annotations plainly and point at the exact words that justify each label. Never invent labels that are not in the answer key.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Sentence: %q\n\n", in.Sentence)
	fmt.Fprintf(&b, "Available labels: %s\n", strings.Join(labelStrings(taxonomy.All()), ", "))
	fmt.Fprintf(&b, "Answer key: %s\n", listOrNone(in.Correct))

	b.WriteString("\nThe annotator chose:\n")
	fmt.Fprintf(&b, "- correctly: %s\n", listOrNone(in.Grade.CorrectSelected))
	fmt.Fprintf(&b, "- incorrectly: %s\n", listOrNone(in.Grade.IncorrectSelected))
	fmt.Fprintf(&b, "- missed: %s\n", listOrNone(in.Grade.MissedCorrect))

	b.WriteString(`
Instructions:
1. Summarize what the sentence expresses in one or two sentences.
2. For every label in the answer key, give the words that signal it.
3. If the annotator chose a label incorrectly, mention briefly in the summary why it does not fit.
4. If the answer key is empty, return an empty labels list and explain why no category applies.`)

	return b.String()
}

func listOrNone(s annotation.LabelSet) string {
	if s.IsEmpty() {
		return "none"
	}
	return s.String()
}

func labelStrings(labels []taxonomy.Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = string(l)
	}
	return out
}
