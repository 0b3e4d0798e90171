package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/bigcalc/internal/config"
)

// FlagCompletion describes a CLI flag for shell completion generation.
type FlagCompletion struct {
	Long      string   // long flag name without "--"
	Short     string   // short flag without "-"
	Help      string   // description text
	Values    []string // suggested values (nil = no suggestions)
	ValueName string   // label for the value; empty for boolean flags
	IsFile    bool     // value is a file path
	IsAlgo    bool     // values come from the multiplier list
}

// flagHint adds what the flag set cannot express: suggested values and
// friendlier help text.
type flagHint struct {
	help      string
	values    []string
	valueName string
	file      bool
	algo      bool
}

var radixValues = []string{"2", "8", "10", "16", "36"}

var flagHints = map[string]flagHint{
	"op":                  {help: "Operation to evaluate", values: config.Operations(), valueName: "operation"},
	"x":                   {valueName: "integer"},
	"y":                   {valueName: "integer"},
	"radix":               {values: radixValues, valueName: "radix"},
	"output-radix":        {values: radixValues, valueName: "radix"},
	"shift":               {valueName: "bits"},
	"timeout":             {values: []string{"10s", "1m", "5m", "30m"}, valueName: "duration"},
	"algo":                {algo: true, valueName: "multiplier"},
	"karatsuba-threshold": {help: "Karatsuba threshold in limbs", values: []string{"16", "32", "64", "128"}, valueName: "limbs"},
	"fft-threshold":       {help: "FFT threshold in limbs", values: []string{"1024", "2048", "4096", "8192"}, valueName: "limbs"},
	"calibration-profile": {file: true, valueName: "file"},
	"output":              {file: true, valueName: "file"},
	"metrics-file":        {file: true, valueName: "file"},
	"config":              {file: true, valueName: "file"},
	"format":              {values: []string{config.FormatText, config.FormatJSON, config.FormatMsgpack}, valueName: "format"},
	"log-level":           {values: []string{"debug", "info", "warn", "error"}, valueName: "level"},
	"completion":          {values: []string{"bash", "zsh", "fish", "powershell"}, valueName: "shell"},
}

// shortAliases pairs long flags with the one-letter flag bound to the same field.
var shortAliases = map[string]string{
	"verbose": "v",
	"details": "d",
	"quiet":   "q",
	"output":  "o",
}

// completionFlags builds the completion table from the flags ParseConfig
// declares, so the scripts cannot drift from the parser.
func completionFlags(algorithms []string) []FlagCompletion {
	infos := config.Flags(algorithms)
	usage := make(map[string]string, len(infos))
	for _, info := range infos {
		usage[info.Name] = info.Usage
	}
	isAlias := make(map[string]bool, len(shortAliases))
	for _, short := range shortAliases {
		isAlias[short] = true
	}

	flags := []FlagCompletion{{Long: "help", Short: "h", Help: "Show help message"}}
	for _, info := range infos {
		if isAlias[info.Name] {
			continue
		}
		f := FlagCompletion{Long: info.Name}
		if len(info.Name) == 1 {
			f = FlagCompletion{Short: info.Name}
		}
		text := info.Usage
		if short, ok := shortAliases[info.Name]; ok {
			f.Short = short
			if strings.HasPrefix(text, "Alias for") {
				text = usage[short]
			}
		}
		hint := flagHints[info.Name]
		f.Help = hint.help
		if f.Help == "" {
			f.Help = summarizeUsage(text)
		}
		f.Values = hint.values
		f.IsFile = hint.file
		f.IsAlgo = hint.algo
		if !info.IsBool {
			f.ValueName = hint.valueName
			if f.ValueName == "" {
				f.ValueName = "value"
			}
		}
		flags = append(flags, f)
	}
	return flags
}

// summarizeUsage shortens a flag usage string to a one-line description
// that is safe inside single-quoted shell words.
func summarizeUsage(usage string) string {
	s := strings.TrimSuffix(strings.TrimSpace(usage), ".")
	if strings.HasSuffix(s, ")") {
		if i := strings.LastIndex(s, " ("); i > 0 {
			s = s[:i]
		}
	}
	if i := strings.Index(s, ": "); i > 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "'", "")
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - algorithms: List of available multiplier names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	flags := completionFlags(algorithms)
	switch shell {
	case "bash":
		return generateBashCompletion(out, flags, algorithms)
	case "zsh":
		return generateZshCompletion(out, flags, algorithms)
	case "fish":
		return generateFishCompletion(out, flags, algorithms)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, flags, algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// flagKey returns the identifier used for lookups: Long name if present, else Short.
func flagKey(f FlagCompletion) string {
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

// spellings returns the command-line forms of a flag.
func spellings(f FlagCompletion) []string {
	var out []string
	if f.Long != "" {
		out = append(out, "--"+f.Long)
	}
	if f.Short != "" {
		out = append(out, "-"+f.Short)
	}
	return out
}

func generateBashCompletion(out io.Writer, flags []FlagCompletion, algorithms []string) error {
	var opts, filePatterns []string
	var cases strings.Builder
	writeCase := func(patterns []string, body string) {
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(patterns, "|"), body)
	}
	for _, f := range flags {
		opts = append(opts, spellings(f)...)
		switch {
		case f.IsAlgo:
			writeCase(spellings(f), `COMPREPLY=( $(compgen -W "${algorithms}" -- "${cur}") )`)
		case f.IsFile:
			filePatterns = append(filePatterns, spellings(f)...)
		case len(f.Values) > 0:
			writeCase(spellings(f), fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}
	if len(filePatterns) > 0 {
		writeCase(filePatterns, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
	}

	_, err := fmt.Fprintf(out, `# Bash completion script for bigcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_bigcalc_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    algorithms="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _bigcalc_completions bigcalc
`, strings.Join(opts, " "), strings.Join(algorithms, " "), cases.String())
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, flags []FlagCompletion, algorithms []string) error {
	args := make([]string, 0, len(flags))
	for _, f := range flags {
		args = append(args, zshArgEntry(f))
	}

	_, err := fmt.Fprintf(out, `#compdef bigcalc

# Zsh completion script for bigcalc
# Add this to your ~/.zshrc or place in $fpath

_bigcalc() {
    local -a algorithms
    algorithms=(%s all)

    _arguments -s \
%s
}

_bigcalc "$@"
`, strings.Join(algorithms, " "), strings.Join(args, " \\\n"))
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	var value string
	switch {
	case f.IsFile:
		value = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsAlgo:
		value = fmt.Sprintf(":%s:($algorithms)", f.ValueName)
	case len(f.Values) > 0:
		value = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		value = fmt.Sprintf(":%s:", f.ValueName)
	}

	switch {
	case f.Long != "" && f.Short != "":
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, value)
	case f.Long != "":
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, value)
	default:
		return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, value)
	}
}

func generateFishCompletion(out io.Writer, flags []FlagCompletion, algorithms []string) error {
	lines := []string{
		"# Fish completion script for bigcalc",
		"# Add this to ~/.config/fish/completions/bigcalc.fish",
		"",
		"complete -c bigcalc -f",
	}
	algoList := strings.Join(algorithms, " ")
	for _, f := range flags {
		lines = append(lines, fishCompleteLine(f, algoList))
	}

	_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, algoList string) string {
	parts := []string{"complete -c bigcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsAlgo:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", algoList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

// psQuote renders values as a PowerShell array body.
func psQuote(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}

func generatePowerShellCompletion(out io.Writer, flags []FlagCompletion, algorithms []string) error {
	var options, switches []string
	for _, f := range flags {
		for _, name := range spellings(f) {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}
		source := ""
		switch {
		case f.IsAlgo:
			source = "$bigcalcAlgorithms"
		case !f.IsFile && len(f.Values) > 0:
			source = "@(" + psQuote(f.Values) + ")"
		default:
			continue
		}
		for _, name := range spellings(f) {
			switches = append(switches, fmt.Sprintf(`        '%s' {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, name, source))
		}
	}

	_, err := fmt.Fprintf(out, `# PowerShell completion script for bigcalc
# Add this to your $PROFILE

$bigcalcAlgorithms = @(%s, 'all')

Register-ArgumentCompleter -CommandName 'bigcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psQuote(algorithms), strings.Join(options, "\n"), strings.Join(switches, "\n"))
	if err != nil {
		return fmt.Errorf("completion powershell generation failed: %w", err)
	}
	return nil
}
