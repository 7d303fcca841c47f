package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.typeforge.dev/ts2schema/resolve"
)

// Flags holds CLI flag names for conversion configuration, allowing
// callers to customize flag names while keeping sensible defaults.
type Flags struct {
	RootType             string
	IncludeSchema        string
	SchemaVersion        string
	StrictObjects        string
	AdditionalProperties string
	IncludeJSDoc         string
	FollowImports        string
	BaseDir              string
}

// Config holds CLI flag values for conversion configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.Options] to build the ts2schema.Option
// list for a conversion call.
type Config struct {
	Flags Flags

	RootType             string
	IncludeSchema        bool
	SchemaVersion        string
	StrictObjects        bool
	AdditionalProperties string
	IncludeJSDoc         bool
	FollowImports        string
	BaseDir              string
}

// CLIDefaults is the shape of an optional ts2schema.yaml project config
// file, read from the current working directory before flag parsing;
// --baseDir does not change where the file is looked up. Flags always
// win over the file; the file always wins over built-in defaults.
type CLIDefaults struct {
	RootType             string `yaml:"rootType"`
	IncludeSchema        *bool  `yaml:"includeSchema"`
	SchemaVersion        string `yaml:"schemaVersion"`
	StrictObjects        bool   `yaml:"strictObjects"`
	AdditionalProperties string `yaml:"additionalProperties"`
	IncludeJSDoc         *bool  `yaml:"includeJSDoc"`
	FollowImports        string `yaml:"followImports"`
}

// configFileName is the recognized project config file name, per
// SPEC_FULL §6.5.
const configFileName = "ts2schema.yaml"

// loadCLIDefaults reads configFileName from baseDir (or the current
// working directory if baseDir is empty). A missing file is not an
// error; it simply yields zero-value defaults.
func loadCLIDefaults(baseDir string) (CLIDefaults, error) {
	dir := baseDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return CLIDefaults{}, fmt.Errorf("getwd: %w", err)
		}

		dir = wd
	}

	path := filepath.Join(dir, configFileName)

	data, err := os.ReadFile(path) //nolint:gosec // Config path is a fixed, well-known file name.
	if err != nil {
		if os.IsNotExist(err) {
			return CLIDefaults{}, nil
		}

		return CLIDefaults{}, fmt.Errorf("read %s: %w", path, err)
	}

	var defaults CLIDefaults

	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return CLIDefaults{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return defaults, nil
}

// NewConfig returns a new [Config] with default flag names, applying
// defaults as a starting point (callers then call [Config.RegisterFlags]
// against a [*pflag.FlagSet] to let the user override them).
func NewConfig(defaults CLIDefaults) *Config {
	f := Flags{
		RootType:             "rootType",
		IncludeSchema:        "includeSchema",
		SchemaVersion:        "schemaVersion",
		StrictObjects:        "strictObjects",
		AdditionalProperties: "additionalProperties",
		IncludeJSDoc:         "includeJSDoc",
		FollowImports:        "followImports",
		BaseDir:              "baseDir",
	}

	c := &Config{
		Flags:         f,
		IncludeSchema: true,
		IncludeJSDoc:  true,
		FollowImports: string(resolve.FollowLocal),
	}

	if defaults.RootType != "" {
		c.RootType = defaults.RootType
	}

	if defaults.IncludeSchema != nil {
		c.IncludeSchema = *defaults.IncludeSchema
	}

	if defaults.SchemaVersion != "" {
		c.SchemaVersion = defaults.SchemaVersion
	}

	c.StrictObjects = defaults.StrictObjects
	c.AdditionalProperties = defaults.AdditionalProperties

	if defaults.IncludeJSDoc != nil {
		c.IncludeJSDoc = *defaults.IncludeJSDoc
	}

	if defaults.FollowImports != "" {
		c.FollowImports = defaults.FollowImports
	}

	return c
}

// RegisterFlags adds conversion flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.RootType, c.Flags.RootType, "r", c.RootType,
		"emit this declared type as the document root")
	flags.BoolVarP(&c.IncludeSchema, c.Flags.IncludeSchema, "s", c.IncludeSchema,
		"prepend $schema to the root schema")
	flags.StringVar(&c.SchemaVersion, c.Flags.SchemaVersion, c.SchemaVersion,
		"$schema URL override")
	flags.BoolVar(&c.StrictObjects, c.Flags.StrictObjects, c.StrictObjects,
		"set additionalProperties: false on objects where nothing more specific applies")
	flags.StringVar(&c.AdditionalProperties, c.Flags.AdditionalProperties, c.AdditionalProperties,
		"fallback additionalProperties value (true|false), unset leaves the field absent")
	flags.BoolVar(&c.IncludeJSDoc, c.Flags.IncludeJSDoc, c.IncludeJSDoc,
		"emit JSDoc-derived descriptions and constraints")
	flags.StringVar(&c.FollowImports, c.Flags.FollowImports, c.FollowImports,
		"import follow mode: none|local|all")
	flags.StringVar(&c.BaseDir, c.Flags.BaseDir, c.BaseDir,
		"base directory for relative entry paths and node_modules ascent")
}

// RegisterCompletions registers shell completions for conversion flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	boolComp := cobra.FixedCompletions([]string{"true", "false"}, cobra.ShellCompDirectiveNoFileComp)

	for _, flag := range []string{c.Flags.IncludeSchema, c.Flags.StrictObjects, c.Flags.AdditionalProperties, c.Flags.IncludeJSDoc} {
		if err := cmd.RegisterFlagCompletionFunc(flag, boolComp); err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	followComp := cobra.FixedCompletions(
		[]string{string(resolve.FollowNone), string(resolve.FollowLocal), string(resolve.FollowAll)},
		cobra.ShellCompDirectiveNoFileComp,
	)
	if err := cmd.RegisterFlagCompletionFunc(c.Flags.FollowImports, followComp); err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.FollowImports, err)
	}

	return nil
}

// followMode parses FollowImports into a resolve.FollowMode, defaulting
// to resolve.FollowLocal on an unrecognized value.
func (c *Config) followMode() resolve.FollowMode {
	switch resolve.FollowMode(c.FollowImports) {
	case resolve.FollowNone, resolve.FollowAll:
		return resolve.FollowMode(c.FollowImports)
	default:
		return resolve.FollowLocal
	}
}
