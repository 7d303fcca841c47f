// Package main provides the CLI entry point for ts2schema, a tool that
// converts TypeScript type declarations to JSON Schema (draft 2020-12).
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"

	"go.typeforge.dev/ts2schema"
	tslog "go.typeforge.dev/ts2schema/log"
	"go.typeforge.dev/ts2schema/profile"
	"go.typeforge.dev/ts2schema/version"
)

func main() {
	defaults, defaultsErr := loadCLIDefaults("")
	if defaultsErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", defaultsErr)
		os.Exit(1)
	}

	cfg := NewConfig(defaults)
	logCfg := tslog.NewConfig()
	profCfg := profile.NewConfig()
	pub := tslog.NewPublisher()

	var doctor bool

	rootCmd := &cobra.Command{
		Use:     "ts2schema <file.ts> [flags]",
		Short:   "Convert TypeScript type declarations to JSON Schema",
		Long:    `ts2schema reads a TypeScript declaration file (interfaces, type aliases, enums) and emits a JSON Schema (draft 2020-12) document on standard output.`,
		Version: version.Revision,
		Args:    cobra.ExactArgs(1),

		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// Fan out to stderr for normal output and to pub so --doctor
			// can capture resolver warnings (e.g. duplicate declarations)
			// into its diagnostic document.
			handler, err := logCfg.NewHandler(io.MultiWriter(os.Stderr, pub))
			if err != nil {
				return fmt.Errorf("configuring logging: %w", err)
			}

			slog.SetDefault(slog.New(handler))

			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, profCfg, pub, doctor, args[0])
		},
	}

	rootCmd.Flags().BoolVar(&doctor, "doctor", false, "emit a diagnostic JSON document instead of converting")

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.Flags())

	if err := cfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := profCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run performs the conversion, or under --doctor writes the diagnostic
// report, and returns any error to main, the only place os.Exit is
// called. Under --doctor a conversion failure is recorded in the report
// rather than returned; only a failure to encode or write the report is
// returned.
func run(cfg *Config, profCfg *profile.Config, pub *tslog.Publisher, doctor bool, filePath string) error {
	if doctor {
		report := runDoctor(cfg, pub, filePath)

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal doctor report: %w", err)
		}

		_, err = os.Stdout.Write(append(out, '\n'))

		return err
	}

	profiler := profCfg.NewProfiler()
	if err := profiler.Start(); err != nil {
		return fmt.Errorf("starting profiler: %w", err)
	}

	defer func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			fmt.Fprintf(os.Stderr, "stopping profiler: %v\n", stopErr)
		}
	}()

	schema, err := convert(cfg, filePath)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	_, err = os.Stdout.Write(append(out, '\n'))

	return err
}

// convert runs the public API façade against filePath using cfg's
// resolved options, honoring --baseDir and --followImports.
func convert(cfg *Config, filePath string) (*jsonschema.Schema, error) {
	opts := []ts2schema.Option{
		ts2schema.WithIncludeSchema(cfg.IncludeSchema),
		ts2schema.WithIncludeJSDoc(cfg.IncludeJSDoc),
		ts2schema.WithStrictObjects(cfg.StrictObjects),
		ts2schema.WithFollowImports(cfg.followMode()),
	}

	if cfg.RootType != "" {
		opts = append(opts, ts2schema.WithRootType(cfg.RootType))
	}

	if cfg.SchemaVersion != "" {
		opts = append(opts, ts2schema.WithSchemaVersion(cfg.SchemaVersion))
	}

	if cfg.BaseDir != "" {
		opts = append(opts, ts2schema.WithBaseDir(cfg.BaseDir))
	}

	switch cfg.AdditionalProperties {
	case "true":
		opts = append(opts, ts2schema.WithAdditionalProperties(true))
	case "false":
		opts = append(opts, ts2schema.WithAdditionalProperties(false))
	}

	return ts2schema.ToJSONSchemaFromFile(filePath, opts...)
}
