package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JittoJoseph/AutoFill-Forms/internal/answer"
	"github.com/JittoJoseph/AutoFill-Forms/internal/form"
	"github.com/JittoJoseph/AutoFill-Forms/internal/model"
	"github.com/JittoJoseph/AutoFill-Forms/pkg/gemini"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the questions of an exported form page",
	Long: `Reads the multiple-choice questions of one form page from a JSON or YAML
file, asks Gemini for the answers in batches, and prints the chosen options.

Questions without options are skipped. Questions Gemini could not answer are
reported as N/A and can be retried in a later run.

Examples:
  # Resolve a page exported as JSON
  resolve --input page1.json

  # Smaller batches, JSON report written to a file
  resolve --input page2.yaml --batch-size 5 --format json --output page2.answers.json`,
	RunE: runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.String("input", "", "question file (.json, .yaml or .yml)")
	f.Int("page", 1, "page number used in reports")
	f.Int("batch-size", 0, "questions per Gemini request (overrides config)")
	f.String("format", "table", "output format: table or json")
	f.String("output", "", "output file path (default: stdout)")
	_ = resolveCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, _ := cmd.Flags().GetString("input")
	page, _ := cmd.Flags().GetInt("page")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if format != "table" && format != "json" {
		return eris.Errorf("resolve: --format must be table or json (got %q)", format)
	}
	if batchSize > 0 {
		cfg.Form.BatchSize = batchSize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "resolve"))

	keys := cfg.Gemini.Keys()
	if len(keys) == 0 {
		log.Warn("no API keys set (GEMINI_API_KEYS); every question will be unresolved")
	}

	resolver, err := answer.New(answer.Config{
		Keys:   keys,
		Models: cfg.Gemini.Models,
		Rounds: cfg.Gemini.Rounds,
		Factory: gemini.NewFactory(
			gemini.WithTimeout(cfg.Gemini.Timeout()),
			gemini.WithJSONMode(cfg.Gemini.JSONMode),
		),
	})
	if err != nil {
		return err
	}

	selector := &form.RecordingSelector{}
	runner, err := form.NewRunner(
		form.FileExtractor{Path: input},
		resolver,
		selector,
		form.WithBatchSize(cfg.Form.BatchSize),
		form.WithNotifier(form.LogNotifier{}),
	)
	if err != nil {
		return err
	}

	summary, err := runner.RunPage(ctx, page)
	if err != nil {
		return eris.Wrap(err, "resolve")
	}
	log.Info("page complete",
		zap.Int("page", summary.Page),
		zap.Int("answered", summary.Answered),
		zap.Int("unresolved", summary.Unresolved),
		zap.Int("skipped", summary.Skipped),
		zap.Int("selections", len(selector.Picks())),
	)

	out := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "resolve: create %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		out = f
	}

	if format == "json" {
		return writeReportJSON(out, resolveReport{PageSummary: summary, Selections: selector.Picks()})
	}
	formatSummary(out, summary)
	return nil
}

// resolveReport is the --format json document: the page summary plus the
// selections applied, in order.
type resolveReport struct {
	*model.PageSummary
	Selections []form.Pick `json:"selections"`
}

func writeReportJSON(w io.Writer, r resolveReport) error {
	if r.Selections == nil {
		r.Selections = []form.Pick{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return eris.Wrap(err, "resolve: encode report")
	}
	return nil
}

func formatSummary(w io.Writer, s *model.PageSummary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tANSWER\tOPTION\tQUESTION")
	for _, r := range s.Results {
		text := r.AnswerText
		if text == "" {
			text = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Number, r.Answer, truncateText(text, 40), truncateText(r.Question, 60))
	}
	tw.Flush() //nolint:errcheck

	fmt.Fprintf(w, "\nPage %d: %d answered, %d unresolved, %d skipped\n",
		s.Page, s.Answered, s.Unresolved, s.Skipped)
}

func truncateText(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
