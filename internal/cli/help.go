package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlines/internal/ui/pretty"
)

// helpStyles holds the Lipgloss styles applied to the pieces of a help
// screen. The zero value renders plain text for no-color output.
type helpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		return helpStyles{}
	}
	return helpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Description: lipgloss.NewStyle(),
		Example:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled usage and help screens for the mdlines
// command tree.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a help formatter, enabling color per the given
// color mode and the writer's terminal status.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":     h.styles.Command.Render,
		"styleHeading":     h.styles.Heading.Render,
		"styleSubcommand":  h.styles.Subcommand.Render,
		"styleDescription": h.styles.Description.Render,
		"styleExample":     h.styles.Example.Render,
		"styleDim":         h.styles.Dim.Render,
		"styleFlagsUsage":  h.styleFlagsUsage,
		"rpad":             rpad,
		"trimTrailing":     trimTrailing,
	}
}

// usageTemplate covers the sections this command tree actually has: a
// runnable root, its subcommands, examples and flags.
func (h *HelpFormatter) usageTemplate() string {
	return `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`
}

func (h *HelpFormatter) helpTemplate() string {
	return `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailing }}

{{end}}` + h.usageTemplate()
}

// styleFlagsUsage restyles pflag's FlagUsages output line by line.
func (h *HelpFormatter) styleFlagsUsage(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}
	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine splits one "  -f, --flag type   description" line at the
// first run of two or more spaces after the flag names and styles the two
// halves separately. Lines that do not match pass through unchanged.
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return line
	}
	indent := strings.Repeat(" ", len(line)-len(trimmed))
	flagPart, desc, ok := splitFlagLine(trimmed)
	if !ok {
		return line
	}
	var b strings.Builder
	b.WriteString(indent)
	for i, token := range strings.Fields(flagPart) {
		if i > 0 {
			b.WriteString(" ")
		}
		if strings.HasPrefix(token, "-") {
			name, comma := strings.CutSuffix(token, ",")
			b.WriteString(h.styles.Flag.Render(name))
			if comma {
				b.WriteString(",")
			}
		} else {
			// Value type hint such as "string" or "int".
			b.WriteString(h.styles.Dim.Render(token))
		}
	}
	b.WriteString("   ")
	b.WriteString(h.styles.Description.Render(desc))
	return b.String()
}

func splitFlagLine(line string) (flagPart, desc string, ok bool) {
	inSpaces := false
	spaceStart := 0
	for idx, r := range line {
		switch {
		case r == ' ':
			if !inSpaces {
				inSpaces = true
				spaceStart = idx
			}
		case inSpaces && idx-spaceStart >= 2:
			return strings.TrimRight(line[:spaceStart], " "), line[idx:], true
		default:
			inSpaces = false
		}
	}
	return "", "", false
}

// ApplyToCommand installs the styled usage and help renderers on a command
// and, through Cobra's inheritance, its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.templateFuncs()

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(funcs).Parse(h.usageTemplate())
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(funcs).Parse(h.helpTemplate())
		if err != nil {
			command.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailing(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
