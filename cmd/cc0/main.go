package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/th13vn/cc0/pkg/frontend"
	"github.com/th13vn/cc0/pkg/version"
)

var (
	// Version information (set during build via ldflags, or detected from build info)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func init() {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.Main.Version != "" && info.Main.Version != "(devel)" {
				Version = info.Main.Version
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					if len(setting.Value) >= 7 {
						GitCommit = setting.Value[:7]
					}
				case "vcs.time":
					BuildTime = setting.Value
				}
			}
		}
	}
}

// diagFormat is a pflag.Value implementing a closed "text"/"json"
// enum for the --diagnostics flag, since cobra's generic string flag
// helpers don't validate against a fixed set of values.
type diagFormat string

func (f *diagFormat) String() string { return string(*f) }

func (f *diagFormat) Set(v string) error {
	switch v {
	case "text", "json":
		*f = diagFormat(v)
		return nil
	default:
		return fmt.Errorf("diagnostics must be \"text\" or \"json\", got %q", v)
	}
}

func (f *diagFormat) Type() string { return "text|json" }

var (
	outputFile  string
	tolerant    bool
	warnDiscard bool
	diagnostics = diagFormat("text")
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cc0",
		Short: "cc0: a small C-like compiler front end",
		Long: `cc0 tokenizes, parses, binds, and type-checks programs written in a
small statically-typed C-like dialect, reporting diagnostics but
stopping short of code generation.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	}

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Run the full pipeline and report diagnostics",
		Long: `Lexes, parses, binds, and type-checks a source file, printing every
diagnostic found. Exit status is 1 if any error-level diagnostic was
recorded, 0 otherwise.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
	checkCmd.Flags().BoolVar(&tolerant, "tolerant", false, "after a syntax error, skip ahead to the next statement boundary")
	checkCmd.Flags().BoolVar(&warnDiscard, "warn-discarded", false, "warn when an expression statement's value is never used")
	checkCmd.Flags().Var(&diagnostics, "diagnostics", "diagnostic output format: text|json")

	dumpCmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Dump the typed AST and symbol tree as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDump,
	}
	dumpCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	dumpCmd.Flags().BoolVar(&tolerant, "tolerant", false, "after a syntax error, skip ahead to the next statement boundary")

	pragmaCmd := &cobra.Command{
		Use:   "pragma [file]",
		Short: "Report the detected #pragma cc0 X.Y directive",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPragma,
	}

	rootCmd.AddCommand(checkCmd, dumpCmd, pragmaCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	result := frontend.Compile(input, &buf, frontend.Options{
		Tolerant:            tolerant,
		WarnDiscardedValues: warnDiscard,
	})

	switch diagnostics {
	case "json":
		if err := json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
			Errors int    `json:"errors"`
			Output string `json:"diagnostics"`
		}{result.Errors, buf.String()}); err != nil {
			return fmt.Errorf("JSON encoding error: %w", err)
		}
	default:
		io.Copy(cmd.OutOrStdout(), &buf)
	}

	if result.Errors > 0 {
		os.Exit(1)
	}
	return nil
}

func runDump(cmd *cobra.Command, args []string) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	result := frontend.Compile(input, nil, frontend.Options{Tolerant: tolerant})

	output, err := json.MarshalIndent(struct {
		Module interface{} `json:"module"`
		Root   interface{} `json:"symbols"`
		Errors int         `json:"errors"`
	}{result.Module, result.Root, result.Errors}, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON encoding error: %w", err)
	}

	return writeOutput(output)
}

func runPragma(cmd *cobra.Command, args []string) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	detected, err := version.Detect(input)
	if err != nil {
		return fmt.Errorf("pragma detection error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "pragma: %s\n", detected.Raw)
	fmt.Fprintf(cmd.OutOrStdout(), "version: %s\n", detected.Version)
	return nil
}

func readInput(args []string) (string, error) {
	var reader io.Reader

	if len(args) == 0 || args[0] == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("cannot open file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("cannot read input: %w", err)
	}

	return string(content), nil
}

func writeOutput(data []byte) error {
	var writer io.Writer

	if outputFile == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}

	if outputFile == "" {
		fmt.Println()
	}

	return nil
}
