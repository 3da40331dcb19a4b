package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/tacit/internal/annotation"
	"github.com/abhisek/tacit/internal/explain"
	"github.com/abhisek/tacit/internal/sentence"
	"github.com/abhisek/tacit/internal/session"
	"github.com/abhisek/tacit/internal/taxonomy"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Fetch one sentence, grade a selection against it and print JSON",
	Example: `  tacit grade --select "Attainment,Class 0"
  tacit grade --select Familial --explain`,
	RunE: runGrade,
}

func init() {
	gradeCmd.Flags().String("select", "", "Comma-separated labels to select")
	gradeCmd.Flags().Bool("explain", false, "Ask the configured LLM to explain the answer key")
}

// gradeReport is the JSON printed by the grade command.
type gradeReport struct {
	SessionID         string         `json:"session_id"`
	Sentence          string         `json:"sentence"`
	Degraded          bool           `json:"degraded"`
	FetchError        string         `json:"fetch_error,omitempty"`
	Selection         []string       `json:"selection"`
	CorrectLabels     []string       `json:"correct_labels"`
	CorrectSelected   []string       `json:"correct_selected"`
	IncorrectSelected []string       `json:"incorrect_selected"`
	MissedCorrect     []string       `json:"missed_correct"`
	AllCorrect        bool           `json:"all_correct"`
	Explanation       *explainReport `json:"explanation,omitempty"`
}

type explainReport struct {
	Summary string            `json:"summary,omitempty"`
	Labels  map[string]string `json:"labels,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func runGrade(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	selection, err := parseSelection(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, _ := newSentenceClient(cfg, logger)

	var explainer *explain.Service
	if want, _ := cmd.Flags().GetBool("explain"); want {
		explainer = newExplainer(ctx, logger, cmd.ErrOrStderr())
		if explainer == nil {
			return fmt.Errorf("--explain needs an LLM provider (set TACIT_LLM_PROVIDER or a vendor API key)")
		}
	}

	wakeDelay := cfg.Service.GetWakeDelay()
	if !cfg.Service.Wake {
		wakeDelay = -1
	}
	report, err := gradeOnce(ctx, client, selection, explainer, wakeDelay, logger)
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), report)
}

// parseSelection resolves --select to canonical labels. Unknown names are
// an error; duplicates collapse.
func parseSelection(cmd *cobra.Command) ([]taxonomy.Label, error) {
	raw, _ := cmd.Flags().GetString("select")

	var out []taxonomy.Label
	seen := make(map[taxonomy.Label]bool)
	for name := range strings.SplitSeq(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		l, ok := taxonomy.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown label %q (see `tacit labels`)", name)
		}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out, nil
}

// gradeOnce runs one create → load → toggle → submit → dispose cycle.
// A negative wakeDelay skips the wake ping.
func gradeOnce(ctx context.Context, client sentence.Client, selection []taxonomy.Label, explainer *explain.Service, wakeDelay time.Duration, logger *log.Logger) (*gradeReport, error) {
	ctrl := session.New(client, session.WithLogger(logger))
	defer ctrl.Dispose()

	if wakeDelay >= 0 {
		ctrl.Wake(ctx, wakeDelay)
	}
	if err := ctrl.LoadNext(ctx); err != nil {
		return nil, err
	}
	for _, l := range selection {
		if err := ctrl.ToggleLabel(l); err != nil {
			return nil, err
		}
	}
	grade, err := ctrl.Submit()
	if err != nil {
		return nil, err
	}

	q, _ := ctrl.Question()
	report := &gradeReport{
		SessionID:         ctrl.SessionID(),
		Sentence:          q.Sentence,
		Degraded:          q.Degraded,
		Selection:         ctrl.Selection().Strings(),
		CorrectLabels:     q.CorrectLabels.Strings(),
		CorrectSelected:   grade.CorrectSelected.Strings(),
		IncorrectSelected: grade.IncorrectSelected.Strings(),
		MissedCorrect:     grade.MissedCorrect.Strings(),
		AllCorrect:        grade.AllCorrect(),
	}
	if err := ctrl.LastError(); err != nil {
		report.FetchError = err.Error()
	}

	if explainer != nil && !q.Degraded {
		report.Explanation = explainGrade(ctx, explainer, q, grade)
	}
	return report, nil
}

func explainGrade(ctx context.Context, explainer *explain.Service, q annotation.QuestionRecord, grade annotation.GradeResult) *explainReport {
	exp, err := explainer.Explain(ctx, explain.Input{
		Sentence: q.Sentence,
		Grade:    grade,
		Correct:  q.CorrectLabels,
	})
	if err != nil {
		return &explainReport{Error: err.Error()}
	}
	r := &explainReport{Summary: exp.Summary, Labels: make(map[string]string, len(exp.Labels))}
	for _, lr := range exp.Labels {
		r.Labels[string(lr.Label)] = lr.Reason
	}
	return r
}

func writeReport(w io.Writer, report *gradeReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
