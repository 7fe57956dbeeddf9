package main

import (
	"fmt"
	"io"
	"maps"

	"github.com/spf13/cobra"

	"mystdir/internal/diagfmt"
	"mystdir/internal/directive"
	"mystdir/internal/driver"
	"mystdir/internal/schemas"
)

type outputFormat string

const (
	formatPretty outputFormat = "pretty"
	formatJSON   outputFormat = "json"
	formatSarif  outputFormat = "sarif"
	formatShort  outputFormat = "short"
	formatText   outputFormat = "text"
)

func readOutputFormat(value string) (outputFormat, error) {
	switch f := outputFormat(value); f {
	case formatPretty, formatJSON, formatSarif, formatShort, formatText:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected pretty|json|sarif|short|text)", value)
}

// runSettings is the merged view of persistent flags and mystdir.toml.
// Flags set on the command line win over the manifest.
type runSettings struct {
	Driver   driver.Config
	Color    bool
	UI       switchMode
	PathMode diagfmt.PathMode
	// Format is the manifest's [output].format, empty when unset.
	Format   string
	Manifest *projectManifest
}

func loadRunSettings(cmd *cobra.Command, out io.Writer) (*runSettings, error) {
	flags := cmd.Flags()

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return nil, err
	}
	var project projectConfig
	if manifest != nil {
		project = manifest.Config
		cliLogger.Debug().Str("manifest", manifest.Path).Msg("using project manifest")
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	colorMode, err := readSwitchMode("color", colorFlag)
	if err != nil {
		return nil, err
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiMode, err := readSwitchMode("ui", uiFlag)
	if err != nil {
		return nil, err
	}

	pathModeFlag, err := flags.GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if !flags.Changed("path-mode") && project.Output.PathMode != "" {
		pathModeFlag = project.Output.PathMode
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeFlag)
	if err != nil {
		return nil, err
	}

	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !flags.Changed("jobs") && project.Parse.Jobs > 0 {
		jobs = project.Parse.Jobs
	}
	raw, err := flags.GetBool("raw-options")
	if err != nil {
		return nil, fmt.Errorf("failed to get raw-options flag: %w", err)
	}
	if !flags.Changed("raw-options") {
		raw = project.Parse.RawOptions
	}
	extra, err := flags.GetStringToString("option")
	if err != nil {
		return nil, fmt.Errorf("failed to get option flag: %w", err)
	}
	schemaFiles, err := flags.GetStringSlice("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to get schemas flag: %w", err)
	}
	useCache, err := flags.GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}

	registry := schemas.Builtin()
	files := schemaFiles
	if manifest != nil {
		files = append(manifest.schemaFiles(), schemaFiles...)
	}
	if len(files) > 0 {
		replaced, err := registry.LoadFiles(files...)
		if err != nil {
			return nil, err
		}
		for _, name := range replaced {
			cliLogger.Info().Str("directive", name).Msg("schema file overrides builtin directive")
		}
	}

	parseOpts := directive.Options{Validate: !raw}
	if len(project.Parse.Options) > 0 || len(extra) > 0 {
		parseOpts.Additional = make(map[string]any, len(project.Parse.Options)+len(extra))
		for k, v := range project.Parse.Options {
			parseOpts.Additional[k] = v
		}
		for k, v := range extra {
			parseOpts.Additional[k] = v
		}
	}

	logger := cliLogger
	settings := &runSettings{
		Driver: driver.Config{
			Registry:       registry,
			Parse:          parseOpts,
			MaxDiagnostics: maxDiagnostics,
			Jobs:           jobs,
			Timings:        timings,
			Log:            &logger,
		},
		Color:    colorMode == modeOn || (colorMode == modeAuto && colorEnabledFor(out)),
		UI:       uiMode,
		PathMode: pathMode,
		Format:   project.Output.Format,
		Manifest: manifest,
	}

	if useCache {
		cache, err := driver.OpenDiskCache("mystdir")
		if err != nil {
			cliLogger.Warn().Err(err).Msg("disk cache unavailable")
		} else {
			settings.Driver.Cache = cache
			cliLogger.Debug().Str("dir", cache.Dir()).Msg("disk cache enabled")
		}
	}
	return settings, nil
}

// clone returns settings with an independent driver config, for runs that
// install their own progress sink.
func (s *runSettings) clone() *runSettings {
	c := *s
	if s.Driver.Parse.Additional != nil {
		c.Driver.Parse.Additional = maps.Clone(s.Driver.Parse.Additional)
	}
	return &c
}
