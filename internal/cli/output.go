// # Naming Conventions
//
// Functions in this package follow consistent naming patterns:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultsToFile].

package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/rootcalc/internal/format"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
	"github.com/agbru/rootcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the export path; the extension selects CSV or JSON.
	OutputFile string
	// Quiet prints only the roots.
	Quiet bool
	// IncludeHistory adds every iteration to the export.
	IncludeHistory bool
	// Presentation is forwarded to DisplayResult.
	Presentation orchestration.PresentationOptions
}

// csvHeader is the column layout of the summary section.
var csvHeader = []string{"method", "converged", "root", "iterations", "final_error", "message"}

// exportDocument is the JSON export layout.
type exportDocument struct {
	Generated    time.Time            `json:"generated"`
	CardsValue   float64              `json:"cards"`
	Target       float64              `json:"target"`
	AnalyticRoot float64              `json:"analytic_root"`
	Results      []exportMethodResult `json:"results"`
}

type exportMethodResult struct {
	Name       string               `json:"name"`
	DurationMS float64              `json:"duration_ms"`
	Result     rootfind.SolveResult `json:"result"`
}

// WriteResultsToFile exports results to cfg.OutputFile. It is a no-op when
// no file is configured.
func WriteResultsToFile(problem rootfind.Problem, results []orchestration.RunResult, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(cfg.OutputFile)) {
	case ".json":
		err = WriteJSON(file, problem, results, cfg.IncludeHistory)
	default:
		err = WriteCSV(file, results, cfg.IncludeHistory)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.OutputFile, err)
	}
	return nil
}

// WriteCSV writes one summary row per method. With includeHistory, a blank
// line and a method,index,x,f_x,abs_error section follow.
func WriteCSV(w io.Writer, results []orchestration.RunResult, includeHistory bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		res := r.Result
		root := ""
		if res.HasRoot {
			root = strconv.FormatFloat(res.Root, 'g', -1, 64)
		}
		if err := cw.Write([]string{
			string(res.Method),
			strconv.FormatBool(res.Converged),
			root,
			strconv.Itoa(res.IterationCount),
			format.FormatError(res.FinalError),
			res.Message,
		}); err != nil {
			return err
		}
	}

	if includeHistory {
		cw.Flush()
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := cw.Write([]string{"method", "index", "x", "f_x", "abs_error"}); err != nil {
			return err
		}
		for _, r := range results {
			for _, rec := range r.Result.History {
				if err := cw.Write([]string{
					string(r.Result.Method),
					strconv.Itoa(rec.Index),
					strconv.FormatFloat(rec.X, 'g', -1, 64),
					strconv.FormatFloat(rec.FunctionValue, 'g', -1, 64),
					strconv.FormatFloat(rec.AbsoluteError, 'g', -1, 64),
				}); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes an indented export document. Histories are dropped
// unless includeHistory is set.
func WriteJSON(w io.Writer, problem rootfind.Problem, results []orchestration.RunResult, includeHistory bool) error {
	doc := exportDocument{
		Generated:    time.Now().UTC(),
		CardsValue:   problem.CardsValue,
		Target:       problem.Target,
		AnalyticRoot: problem.AnalyticRoot(),
		Results:      make([]exportMethodResult, len(results)),
	}
	for i, r := range results {
		res := r.Result
		if !includeHistory {
			res.History = nil
		}
		doc.Results[i] = exportMethodResult{
			Name:       r.Name,
			DurationMS: float64(r.Duration) / float64(time.Millisecond),
			Result:     res,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// DisplayResultsWithConfig prints the results in the configured mode and
// exports them when an output file is set.
func DisplayResultsWithConfig(out io.Writer, problem rootfind.Problem, results []orchestration.RunResult, cfg OutputConfig) error {
	if cfg.Quiet {
		DisplayQuietResult(out, results)
	} else {
		DisplayResult(problem, results, cfg.Presentation, out)
	}

	if cfg.OutputFile != "" {
		if err := WriteResultsToFile(problem, results, cfg); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
