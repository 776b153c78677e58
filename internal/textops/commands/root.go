// Package commands implements the text-ops CLI.
package commands

import (
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/samestrin/text-ops/internal/logging"
	"github.com/samestrin/text-ops/internal/textops"
	"github.com/samestrin/text-ops/internal/textops/config"
	"github.com/samestrin/text-ops/pkg/output"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time using ldflags
var Version = "0.1.0"

// Global output flags, read by main when reporting errors
var (
	GlobalJSONOutput bool
	GlobalMinOutput  bool
)

type rootOptions struct {
	operParam    string
	configPath   string
	envFile      string
	entityFormat string
	verbose      bool
	list         bool
}

// NewRootCmd creates the root command. Each call resets the global output flags.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "text-ops <operation_mode>",
		Short: "Send stdin to a hosted natural-language service",
		Long: `Read all of standard input, send it to one hosted natural-language service
and print the result.

Operation modes:
  translate           Translate English text; --oper-param sets the destination language
  sentiment_analysis  Print "score: <score> | label: <label>" for the whole document
  entity_extraction   Print the recognized entities as indented JSON (or YAML)

Credentials are read from TEXTOPS_TRANSLATOR_APIKEY and TEXTOPS_NLU_APIKEY,
a .env file, or a --config file.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		ValidArgs:     textops.KindNames(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.operParam, "oper-param", "", "additional parameter for the operation (destination language for translate)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML or TOML file with a textops section")
	cmd.Flags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "Path to a .env file (skipped if absent unless set explicitly)")
	cmd.Flags().StringVar(&opts.entityFormat, "entity-format", textops.EntityFormatJSON, "Entity list rendering for entity_extraction (json, yaml)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging to stderr")
	cmd.Flags().BoolVar(&opts.list, "list", false, "List operation modes and exit")
	cmd.Flags().BoolVar(&GlobalJSONOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&GlobalMinOutput, "min", false, "Minimal/token-optimized output")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions) error {
	formatter := output.New(GlobalJSONOutput, GlobalMinOutput, cmd.OutOrStdout())
	if opts.list {
		return printKinds(formatter)
	}

	if len(args) == 0 {
		return textops.ErrMissingOperation()
	}
	kind, err := textops.ParseKind(args[0])
	if err != nil {
		return err
	}

	if _, err := config.LoadEnvFile(opts.envFile, cmd.Flags().Changed("env-file")); err != nil {
		return err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(cfg.LogFormat, level, cmd.ErrOrStderr())
	if err != nil {
		return &textops.Error{
			Type:    textops.ErrTypeConfiguration,
			Message: "invalid log configuration",
			Cause:   err,
			Hint:    "Set TEXTOPS_LOG_LEVEL to one of trace, debug, info, warn, error.",
		}
	}

	svc, err := cfg.Service(kind)
	if err != nil {
		return err
	}
	op, err := buildOperation(kind, textops.Options{
		Service: svc,
		Param:   opts.operParam,
		Logger:  logger,
	}, opts.entityFormat)
	if err != nil {
		return err
	}

	input, err := readInput(cmd.InOrStdin(), logger)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("operation", string(kind)).
		Str("input_size", humanize.Bytes(uint64(len(input)))).
		Msg("dispatching")

	result, err := op.Produce(cmd.Context(), input)
	if err != nil {
		return err
	}

	return formatter.Print(result, func(io.Writer, interface{}) {
		formatter.PrintText(result.Text)
	})
}

func buildOperation(kind textops.Kind, opts textops.Options, entityFormat string) (textops.Operation, error) {
	op, err := textops.New(kind, opts)
	if err != nil {
		return nil, err
	}
	if extractor, ok := op.(*textops.EntityExtractor); ok {
		configured, err := extractor.WithFormat(entityFormat)
		if err != nil {
			return nil, err
		}
		return configured, nil
	}
	return op, nil
}

// readInput reads the whole stream as one text blob.
func readInput(r io.Reader, logger zerolog.Logger) (string, error) {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logger.Info().Msg("reading input from the terminal until EOF (Ctrl-D)")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", textops.ErrInputRead(err)
	}
	return string(data), nil
}

// KindList is the --list output.
type KindList struct {
	Operations []string `json:"operations"`
}

func printKinds(formatter *output.Formatter) error {
	return formatter.Print(KindList{Operations: textops.KindNames()}, func(io.Writer, interface{}) {
		for _, name := range textops.KindNames() {
			formatter.PrintText(name)
		}
	})
}
