// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files or encoded streams.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile], [WriteJSON].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Format is the file format: text, json or msgpack.
	Format string
	// Radix is used for the textual values.
	Radix int
	// Quiet mode suppresses the confirmation message.
	Quiet bool
}

// LabeledValue is one value of a ResultDocument. Value keeps the exact
// integer (a decimal string in JSON, sign plus limbs in msgpack); Text is
// the same value in the document's radix.
type LabeledValue struct {
	Label string     `json:"label" msgpack:"label"`
	Value bigint.Int `json:"value" msgpack:"value"`
	Text  string     `json:"text" msgpack:"text"`
}

// RunSummary records how one multiplier fared.
type RunSummary struct {
	Multiplier string `json:"multiplier" msgpack:"multiplier"`
	DurationNs int64  `json:"duration_ns" msgpack:"duration_ns"`
	Error      string `json:"error,omitempty" msgpack:"error,omitempty"`
}

// ResultDocument is the serialized form of an evaluation, shared by the
// JSON and msgpack writers.
type ResultDocument struct {
	Operation  string         `json:"operation" msgpack:"operation"`
	Multiplier string         `json:"multiplier" msgpack:"multiplier"`
	DurationNs int64          `json:"duration_ns" msgpack:"duration_ns"`
	Radix      int            `json:"radix" msgpack:"radix"`
	Values     []LabeledValue `json:"values" msgpack:"values"`
	Runs       []RunSummary   `json:"runs,omitempty" msgpack:"runs,omitempty"`
	Generated  string         `json:"generated" msgpack:"generated"`
}

// NewResultDocument builds the document for the best result of op. Every
// entry of results is summarized in Runs.
func NewResultDocument(best orchestration.CalculationResult, results []orchestration.CalculationResult, op orchestration.Operation, radix int) ResultDocument {
	doc := ResultDocument{
		Operation:  op.String(),
		Multiplier: best.Name,
		DurationNs: best.Duration.Nanoseconds(),
		Radix:      radix,
		Generated:  time.Now().UTC().Format(time.RFC3339),
	}
	labels := op.Labels()
	for i, v := range best.Values {
		label := "result"
		if i < len(labels) {
			label = labels[i]
		}
		doc.Values = append(doc.Values, LabeledValue{Label: label, Value: v, Text: v.Text(radix)})
	}
	for _, r := range results {
		run := RunSummary{Multiplier: r.Name, DurationNs: r.Duration.Nanoseconds()}
		if r.Err != nil {
			run.Error = r.Err.Error()
		}
		doc.Runs = append(doc.Runs, run)
	}
	return doc
}

// BestResult returns the fastest successful result.
func BestResult(results []orchestration.CalculationResult) (orchestration.CalculationResult, bool) {
	var best orchestration.CalculationResult
	found := false
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found || r.Duration < best.Duration {
			best, found = r, true
		}
	}
	return best, found
}

// WriteResultToFile writes doc to cfg.OutputFile in cfg.Format, creating
// parent directories as needed. It does nothing when no file is configured.
func WriteResultToFile(doc ResultDocument, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch cfg.Format {
	case config.FormatJSON:
		err = WriteJSON(file, doc)
	case config.FormatMsgpack:
		err = msgpack.NewEncoder(file).Encode(doc)
	default:
		err = writeText(file, doc)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s output: %w", cfg.Format, err)
	}
	return nil
}

func writeText(w io.Writer, doc ResultDocument) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# bigcalc result\n")
	fmt.Fprintf(&b, "# Generated: %s\n", doc.Generated)
	fmt.Fprintf(&b, "# Operation: %s\n", doc.Operation)
	fmt.Fprintf(&b, "# Multiplier: %s\n", doc.Multiplier)
	fmt.Fprintf(&b, "# Duration: %s\n", time.Duration(doc.DurationNs))
	fmt.Fprintf(&b, "# Radix: %d\n\n", doc.Radix)
	for _, v := range doc.Values {
		fmt.Fprintf(&b, "%s =\n%s\n", v.Label, v.Text)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(out io.Writer, doc ResultDocument) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ReadResultFile decodes a document written by WriteResultToFile in the
// json or msgpack format.
func ReadResultFile(path, format string) (ResultDocument, error) {
	var doc ResultDocument
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	switch format {
	case config.FormatJSON:
		err = json.Unmarshal(data, &doc)
	case config.FormatMsgpack:
		err = msgpack.Unmarshal(data, &doc)
	default:
		err = fmt.Errorf("cannot decode %q result files", format)
	}
	return doc, err
}

// FormatQuietResult formats values for quiet mode: one value per line, no
// grouping, suitable for scripting.
func FormatQuietResult(values []bigint.Int, radix int) string {
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = v.Text(radix)
	}
	return strings.Join(lines, "\n")
}

// DisplayQuietResult outputs values in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, values []bigint.Int, radix int) {
	fmt.Fprintln(out, FormatQuietResult(values, radix))
}

// SaveResult writes doc according to cfg and confirms on out.
func SaveResult(out io.Writer, doc ResultDocument, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(doc, cfg); err != nil {
		return err
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorBlue(), cfg.OutputFile, ui.ColorReset())
	}
	return nil
}
