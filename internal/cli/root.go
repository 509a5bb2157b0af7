// Package cli provides the Cobra command structure for mdlines.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlines/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdlines command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	opts := &renderOptions{}

	rootCmd := &cobra.Command{
		Use:   "mdlines [file]",
		Short: "Render Markdown as width-constrained terminal lines",
		Long: `mdlines renders CommonMark and GitHub Flavored Markdown as a flat
stream of styled lines, wrapped to the terminal width.

Inline formatting, links, lists, blockquotes, code blocks and tables all
survive as styled spans; reading from standard input is the default when
no file is given.`,
		Example: `  mdlines README.md
  mdlines --width 72 --theme styled doc.md
  cat notes.md | mdlines --hide-urls`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.color = color
			return runRender(cmd.Context(), opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Render flags.
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "path to config file")
	rootCmd.Flags().IntVarP(&opts.width, "width", "w", 0,
		"target line width (default: terminal width)")
	rootCmd.Flags().StringVarP(&opts.theme, "theme", "t", "",
		"symbol theme: default, styled")
	rootCmd.Flags().BoolVar(&opts.hideURLs, "hide-urls", false,
		"omit link URLs, keeping descriptions")
	rootCmd.Flags().BoolVar(&opts.detectLanguage, "detect-language", false,
		"classify untagged code blocks")

	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
