package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/yaklabco/mdlines/internal/configloader"
	"github.com/yaklabco/mdlines/internal/logging"
	"github.com/yaklabco/mdlines/internal/ui/pretty"
	"github.com/yaklabco/mdlines/pkg/mapper"
	"github.com/yaklabco/mdlines/pkg/render"
)

type renderOptions struct {
	configPath     string
	width          int
	theme          string
	color          string
	hideURLs       bool
	detectLanguage bool
}

func runRender(ctx context.Context, opts *renderOptions, args []string) error {
	logger := logging.FromContext(ctx)

	cfg, err := resolveConfig(ctx, opts)
	if err != nil {
		return err
	}
	logging.SetLevel(cfg.LogLevel)

	source, path, err := readSource(args)
	if err != nil {
		return err
	}

	width := cfg.Width
	if width == 0 {
		width = terminalWidth()
	}

	m := mapperForConfig(cfg)
	logger.Debug("rendering",
		logging.FieldInput, path,
		logging.FieldWidth, width,
		logging.FieldTheme, cfg.Theme,
		logging.FieldHideURLs, cfg.HideURLs,
	)

	var renderOpts []render.Option
	renderOpts = append(renderOpts, render.WithWidths(mapper.Widths(m)))
	if cfg.DetectLanguage {
		renderOpts = append(renderOpts, render.WithLanguageDetection())
	}
	renderer := render.New(renderOpts...)

	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, os.Stdout))
	painter := pretty.NewPainter(styles, m, width)

	start := time.Now()
	count := 0
	it := renderer.Lines(width, source)
	for {
		line, ok := it.Next()
		if !ok {
			break
		}
		fmt.Fprintln(os.Stdout, painter.Paint(line))
		count++
	}

	logger.Debug("rendered",
		logging.FieldLines, count,
		logging.FieldDuration, time.Since(start).Milliseconds(),
	)
	return nil
}

func resolveConfig(ctx context.Context, opts *renderOptions) (*configloader.Config, error) {
	cliCfg := &configloader.Config{
		Width:          opts.width,
		Theme:          opts.theme,
		Color:          opts.color,
		HideURLs:       opts.hideURLs,
		DetectLanguage: opts.detectLanguage,
	}
	// "auto" is the flag default; only explicit values override config.
	if cliCfg.Color == configloader.ColorAuto {
		cliCfg.Color = ""
	}
	result, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: opts.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	for _, path := range result.LoadedFrom {
		logging.FromContext(ctx).Debug("loaded configuration", logging.FieldConfigPath, path)
	}
	return result.Config, nil
}

func readSource(args []string) (source, path string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return configloader.DefaultWidth
}

// hideURLsMapper overlays URL hiding on any symbol mapper.
type hideURLsMapper struct {
	mapper.Mapper
}

func (hideURLsMapper) HideURLs() bool { return true }

func mapperForConfig(cfg *configloader.Config) mapper.Mapper {
	var m mapper.Mapper
	switch cfg.Theme {
	case configloader.ThemeStyled:
		m = mapper.Styled{}
	default:
		m = mapper.Default{}
	}
	if cfg.HideURLs {
		m = hideURLsMapper{m}
	}
	return m
}
