package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	tslog "go.typeforge.dev/ts2schema/log"
	"go.typeforge.dev/ts2schema/version"
)

// doctorEnvironment captures the runtime environment for --doctor
// diagnostics, per SPEC_FULL §6.2a / spec §6.2.
type doctorEnvironment struct {
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
	Cwd       string `json:"cwd"`
}

// doctorInput describes the requested input file, whether or not it
// actually exists.
type doctorInput struct {
	FilePath     string  `json:"filePath"`
	AbsolutePath string  `json:"absolutePath"`
	FileExists   bool    `json:"fileExists"`
	FileSize     *int64  `json:"fileSize,omitempty"`
	Modified     *string `json:"modified,omitempty"`
	SourceLength *int    `json:"sourceLength,omitempty"`
	SourceLines  *int    `json:"sourceLines,omitempty"`
	Source       *string `json:"source,omitempty"`
}

// doctorConversionResult is a sum type in JSON clothing: exactly one of
// Success's two shapes, or ReadError, is populated.
type doctorConversionResult struct {
	Success   bool             `json:"success"`
	Schema    json.RawMessage  `json:"schema,omitempty"`
	Error     *doctorError     `json:"error,omitempty"`
	ReadError *doctorReadError `json:"readError,omitempty"`
}

type doctorError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

type doctorReadError struct {
	Message string `json:"message"`
}

// doctorReport is the full --doctor diagnostic document, per spec §6.2.
type doctorReport struct {
	Timestamp        string                 `json:"timestamp"`
	Version          string                 `json:"version"`
	Environment      doctorEnvironment      `json:"environment"`
	Input            doctorInput            `json:"input"`
	Options          map[string]any         `json:"options"`
	ConversionResult doctorConversionResult `json:"conversionResult"`
	Log              []string               `json:"log,omitempty"`
}

// runDoctor builds a diagnostic report for filePath, attempting the
// conversion run would have performed and capturing success or failure
// into the document instead of propagating it. A missing input file is
// non-fatal here; the diagnostic records the failure and the process
// still exits 0 (runDoctor itself never returns an error).
//
// It subscribes to pub for the duration of the conversion so any
// resolver diagnostics (e.g. a duplicate-declaration warning) logged
// through slog.Default() during convert are captured into Log
// alongside their usual delivery to stderr.
func runDoctor(cfg *Config, pub *tslog.Publisher, filePath string) (report doctorReport) {
	sub := pub.Subscribe()

	defer func() {
		sub.Close()
		report.Log = drainLog(sub)
	}()

	report = doctorReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   version.Revision,
		Environment: doctorEnvironment{
			GoVersion: version.GoVersion,
			Platform:  version.GoOS,
			Arch:      version.GoArch,
		},
		Options: cfgToOptionsMap(cfg),
	}

	if wd, err := os.Getwd(); err == nil {
		report.Environment.Cwd = wd
	}

	abs := filePath
	if !filepath.IsAbs(abs) {
		if a, err := filepath.Abs(abs); err == nil {
			abs = a
		}
	}

	report.Input = doctorInput{
		FilePath:     filePath,
		AbsolutePath: abs,
	}

	info, statErr := os.Stat(abs)
	if statErr != nil {
		report.Input.FileExists = false
		report.ConversionResult = doctorConversionResult{
			Success:   false,
			ReadError: &doctorReadError{Message: statErr.Error()},
		}

		return report
	}

	report.Input.FileExists = true
	size := info.Size()
	report.Input.FileSize = &size
	modified := info.ModTime().UTC().Format(time.RFC3339)
	report.Input.Modified = &modified

	data, err := os.ReadFile(abs) //nolint:gosec // Path is a user-supplied CLI argument, same as normal conversion.
	if err != nil {
		report.ConversionResult = doctorConversionResult{
			Success:   false,
			ReadError: &doctorReadError{Message: err.Error()},
		}

		return report
	}

	source := string(data)
	length := len(source)
	lines := 1 + countNewlines(source)
	report.Input.SourceLength = &length
	report.Input.SourceLines = &lines
	report.Input.Source = &source

	schema, convErr := convert(cfg, abs)
	if convErr != nil {
		report.ConversionResult = doctorConversionResult{
			Success: false,
			Error:   &doctorError{Message: convErr.Error()},
		}

		return report
	}

	raw, marshalErr := json.Marshal(schema)
	if marshalErr != nil {
		report.ConversionResult = doctorConversionResult{
			Success: false,
			Error:   &doctorError{Message: marshalErr.Error()},
		}

		return report
	}

	report.ConversionResult = doctorConversionResult{Success: true, Schema: raw}

	return report
}

// drainLog collects whatever entries sub's channel already holds without
// blocking. Close marks the subscription closed but the Publisher only
// closes its channel on its next Write or Close, so a final non-blocking
// drain here picks up everything published during the call it wrapped.
func drainLog(sub *tslog.Subscription) []string {
	var lines []string

	for {
		select {
		case b, ok := <-sub.C():
			if !ok {
				return lines
			}

			lines = append(lines, strings.TrimRight(string(b), "\n"))
		default:
			return lines
		}
	}
}

func countNewlines(s string) int {
	n := 0

	for _, r := range s {
		if r == '\n' {
			n++
		}
	}

	return n
}

func cfgToOptionsMap(cfg *Config) map[string]any {
	return map[string]any{
		"rootType":             cfg.RootType,
		"includeSchema":        cfg.IncludeSchema,
		"schemaVersion":        cfg.SchemaVersion,
		"strictObjects":        cfg.StrictObjects,
		"additionalProperties": cfg.AdditionalProperties,
		"includeJSDoc":         cfg.IncludeJSDoc,
		"followImports":        cfg.FollowImports,
		"baseDir":              cfg.BaseDir,
		"goVersion":            runtime.Version(),
	}
}
