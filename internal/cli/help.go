package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mtlsort/internal/ui/pretty"
)

// argumentsAnnotation is the cobra annotation holding the "Arguments:" help
// section of a command.
const argumentsAnnotation = "mtlsort.arguments"

// pairArguments describes the positional arguments of the commands that
// take an OBJ/MTL pair.
const pairArguments = `  <geometry.obj>   OBJ file; every usemtl line gets a fresh material name
  <material.mtl>   MTL file declaring the materials the OBJ file uses`

// warningPrefix marks description lines rendered with the warning style.
const warningPrefix = "WARNING:"

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Argument   lipgloss.Style
	Example    lipgloss.Style
	Warning    lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:    plain,
			Heading:    plain,
			Subcommand: plain,
			Flag:       plain,
			Argument:   plain,
			Example:    plain,
			Warning:    plain,
			Dim:        plain,
		}
	}

	return &HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Argument:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Example:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
	help   *template.Template
	usage  *template.Template
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{
		styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer)),
	}

	funcs := template.FuncMap{
		"styleCommand":    h.styles.Command.Render,
		"styleHeading":    h.styles.Heading.Render,
		"styleSubcommand": h.styles.Subcommand.Render,
		"styleExample":    h.styles.Example.Render,
		"styleDim":        h.styles.Dim.Render,
		"styleLong":       h.styleLong,
		"styleArguments":  h.styleArguments,
		"styleFlagsUsage": h.styleFlagsUsage,
		"arguments":       func(cmd *cobra.Command) string { return cmd.Annotations[argumentsAnnotation] },
		"rpad":            rpad,
	}

	h.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	h.help = template.Must(template.Must(h.usage.Clone()).New("help").Parse(helpTemplate))

	return h
}

const usageTemplate = `{{ styleHeading "Usage:" }}
{{- if .Runnable}}
  {{ styleCommand .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ styleCommand .CommandPath }} [command]{{end}}

{{- with arguments .}}

{{ styleHeading "Arguments:" }}
{{ styleArguments . }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags.FlagUsages }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags.FlagUsages }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{with (or .Long .Short)}}{{ styleLong . }}

{{end}}{{ template "usage" . }}`

// styleLong trims trailing blanks from each description line and highlights
// warning lines.
func (h *HelpFormatter) styleLong(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.HasPrefix(line, warningPrefix) {
			line = h.styles.Warning.Render(warningPrefix) + strings.TrimPrefix(line, warningPrefix)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// styleArguments colors the argument names of an "Arguments:" section.
func (h *HelpFormatter) styleArguments(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		name, desc, ok := splitColumns(line)
		if !ok {
			continue
		}
		lines[i] = name.indent + h.styles.Argument.Render(name.text) + desc
	}
	return strings.Join(lines, "\n")
}

// styleFlagsUsage colors the flag names of pflag's usage listing and dims
// the value type. Column alignment is kept.
func (h *HelpFormatter) styleFlagsUsage(usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		name, desc, ok := splitColumns(line)
		if !ok {
			continue
		}

		tokens := strings.Fields(name.text)
		for j, token := range tokens {
			if !strings.HasPrefix(token, "-") {
				tokens[j] = h.styles.Dim.Render(token)
				continue
			}
			flag, comma := strings.CutSuffix(token, ",")
			tokens[j] = h.styles.Flag.Render(flag)
			if comma {
				tokens[j] += ","
			}
		}

		lines[i] = name.indent + strings.Join(tokens, " ") + desc
	}
	return strings.Join(lines, "\n")
}

type column struct {
	indent string
	text   string
}

// splitColumns splits a help line into its leading name column and the
// rest, which starts at the first run of two or more spaces. The rest keeps
// its padding so styled output aligns like the plain text.
func splitColumns(line string) (column, string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return column{}, "", false
	}

	gap := strings.Index(trimmed, "  ")
	if gap <= 0 {
		return column{}, "", false
	}

	return column{
		indent: line[:len(line)-len(trimmed)],
		text:   trimmed[:gap],
	}, trimmed[gap:], true
}

// ApplyToCommand applies styled help templates to a Cobra command and all
// subcommands, which inherit the functions.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.usage.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}
