package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wellbeing-backend/internal/wellbeing"
)

func newAnalyzeCmd(deps Deps) *cobra.Command {
	var (
		file    string
		asJSON  bool
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Analyze text with the configured strategy, falling back to the local classifier",
		Long: `Analyze reads text from the arguments, --file, or stdin and prints the
canonical analysis. Provider failures never fail the command; the local
classifier answers instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}
			if err := wellbeing.ValidateInput(text); err != nil {
				return err
			}

			svc, err := deps.BuildService(deps.LoadConfig())
			if err != nil {
				return err
			}
			out := svc.Run(cmd.Context(), text)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			writeOutcome(cmd.OutOrStdout(), out, !noColor)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read text from a file ('-' for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full outcome as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Print without color hints")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Run only the local keyword classifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, "")
			if err != nil {
				return err
			}
			if err := wellbeing.ValidateInput(text); err != nil {
				return err
			}
			record := wellbeing.Classify(text)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), record)
			}
			writeRecord(cmd.OutOrStdout(), record, false)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the record as JSON")
	return cmd
}

func newStrategyCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "strategy",
		Short: "Show which strategy the current configuration selects",
		RunE: func(cmd *cobra.Command, args []string) error {
			pc := deps.LoadConfig().ProviderConfig()
			plan := wellbeing.Plan(pc)
			names := make([]string, len(plan))
			for i, s := range plan {
				names[i] = string(s)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "strategy: %s\nplan: %s\n", wellbeing.SelectStrategy(pc), strings.Join(names, " -> "))
			return nil
		},
	}
}

func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "" && file != "-":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeOutcome(w io.Writer, out wellbeing.Outcome, colors bool) {
	fmt.Fprintf(w, "strategy: %s", out.Strategy)
	if out.Fallback {
		fmt.Fprintf(w, " (fallback: %s)", out.FallbackReason)
	}
	fmt.Fprintln(w)
	writeRecord(w, out.Record, colors)
}

func writeRecord(w io.Writer, r wellbeing.AnalysisRecord, colors bool) {
	if colors {
		d := wellbeing.DisplayFor(r)
		fmt.Fprintf(w, "mood: %s [%s]\n", r.Mood, d.MoodColor)
		fmt.Fprintf(w, "stress: %d/10 [%s]\n", r.StressLevel, d.StressColor)
		fmt.Fprintf(w, "workload: %d/10 [%s]\n", r.WorkloadLevel, d.WorkloadColor)
	} else {
		fmt.Fprintf(w, "mood: %s\n", r.Mood)
		fmt.Fprintf(w, "stress: %d/10\n", r.StressLevel)
		fmt.Fprintf(w, "workload: %d/10\n", r.WorkloadLevel)
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(w, "tags: %s\n", strings.Join(r.Tags, ", "))
	}
	fmt.Fprintln(w, "recommendations:")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(w, "  %d. %s\n", i+1, rec)
	}
	fmt.Fprintf(w, "summary: %s\n", r.Summary)
}
