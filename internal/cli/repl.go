// Package cli provides the command-line presentation layer of bigcalc:
// progress display, result presentation, file output, shell completion and
// the REPL (Read-Eval-Print Loop) for interactive evaluation.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/multiplier"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// defaultREPLTimeout bounds each evaluation when REPLConfig.Timeout is unset.
const defaultREPLTimeout = time.Minute

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the default multiplier to use for evaluations.
	DefaultAlgo string
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// Radix is the initial radix for operands and results.
	Radix int
	// Verbose displays full values instead of truncating them.
	Verbose bool
}

// REPL represents an interactive calculator session.
type REPL struct {
	config      REPLConfig
	registry    *multiplier.Registry
	currentAlgo string
	radix       int
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - registry: The available multipliers.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(registry *multiplier.Registry, config REPLConfig) *REPL {
	currentAlgo := config.DefaultAlgo
	if _, err := registry.Get(currentAlgo); err != nil {
		currentAlgo = "auto"
		if _, err := registry.Get(currentAlgo); err != nil {
			if names := registry.List(); len(names) > 0 {
				currentAlgo = names[0]
			}
		}
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultREPLTimeout
	}
	radix := config.Radix
	if radix < 2 || radix > 36 {
		radix = 10
	}

	return &REPL{
		config:      config,
		registry:    registry,
		currentAlgo: currentAlgo,
		radix:       radix,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"big> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		eof := errors.Is(err, io.EOF)

		if input = strings.TrimSpace(input); input != "" {
			if !r.processCommand(input) {
				return
			}
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorBlue(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🔢 bigcalc - Interactive Mode%s                          %s║%s\n",
		ui.ColorBlue(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorBlue(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorBlue(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<x> <operator> <y>%s - Evaluate, e.g. 12 * 34, ff << 4, 7 divmod -2\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<op> <x> [y]%s       - Evaluate in prefix form, e.g. neg 5, sqr 99\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scompare <expr>%s     - Evaluate with every multiplier\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s        - Change multiplier (%s)\n", ui.ColorYellow(), ui.ColorReset(), r.getAlgoList())
	fmt.Fprintf(r.out, "  %sradix <r>%s          - Change the radix (2-36)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s               - List available multipliers\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s             - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s               - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s        - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// getAlgoList returns a comma-separated list of available multipliers.
func (r *REPL) getAlgoList() string {
	return strings.Join(r.registry.List(), ", ")
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "algo":
		r.cmdAlgo(args)
	case "radix":
		r.cmdRadix(args)
	case "compare":
		r.cmdCompare(strings.Join(args, " "))
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.evaluate(input)
	}

	return true
}

// evaluate runs expr with the current multiplier.
func (r *REPL) evaluate(expr string) {
	m, err := r.registry.Get(r.currentAlgo)
	if err != nil {
		fmt.Fprintf(r.out, "%sMultiplier not found: %s%s\n", ui.ColorRed(), r.currentAlgo, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	op, result, err := Evaluate(ctx, expr, r.radix, m)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	DisplayResult(result, op, orchestration.PresentationOptions{Radix: r.radix, Verbose: r.config.Verbose}, r.out)
	fmt.Fprintln(r.out)
}

// cmdAlgo handles the "algo" command.
func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available multipliers: %s\n", r.getAlgoList())
		return
	}

	name := strings.ToLower(args[0])
	m, err := r.registry.Get(name)
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown multiplier: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available multipliers: %s\n", r.getAlgoList())
		return
	}

	r.currentAlgo = name
	fmt.Fprintf(r.out, "Multiplier changed to: %s%s%s\n", ui.ColorGreen(), m.Name(), ui.ColorReset())
}

// cmdRadix handles the "radix" command.
func (r *REPL) cmdRadix(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: radix <2-36>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	radix, err := strconv.Atoi(args[0])
	if err != nil || radix < 2 || radix > 36 {
		fmt.Fprintf(r.out, "%sInvalid radix: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.radix = radix
	fmt.Fprintf(r.out, "Radix changed to: %s%d%s\n", ui.ColorGreen(), radix, ui.ColorReset())
}

// cmdCompare evaluates expr with every registered multiplier.
func (r *REPL) cmdCompare(expr string) {
	if expr == "" {
		fmt.Fprintf(r.out, "%sUsage: compare <expr>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	op, err := ParseExpression(expr, r.radix)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	multipliers := orchestration.GetMultipliersToRun("all", r.registry)
	results := orchestration.Execute(ctx, multipliers, op, orchestration.NullProgressReporter{}, io.Discard)
	opts := orchestration.PresentationOptions{Radix: r.radix, Verbose: r.config.Verbose}
	orchestration.AnalyzeComparisonResults(results, op, opts, CLIResultPresenter{}, r.out)
	fmt.Fprintln(r.out)
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable multipliers:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.registry.List() {
		m, err := r.registry.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), m.Name())
	}
	fmt.Fprintln(r.out)
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Multiplier:  %s%s%s\n", ui.ColorBlue(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Radix:       %s%d%s\n", ui.ColorBlue(), r.radix, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:     %s%s%s\n", ui.ColorBlue(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintln(r.out)
}
