package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/qrscan/internal/appstate"
	"github.com/oukeidos/qrscan/internal/config"
	"github.com/oukeidos/qrscan/internal/language"
	"github.com/oukeidos/qrscan/internal/logger"
	"github.com/oukeidos/qrscan/internal/scanner"
)

type decodeOptions struct {
	lang        string
	outputPath  string
	yes         bool
	maxSize     int
	formats     string
	logFilePath string
	debug       bool
}

func newDecodeCmd() *cobra.Command {
	opts := decodeOptions{}
	cmd := &cobra.Command{
		Use:   "decode <image>",
		Short: "Decode one symbol from an image file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Usage()
				return fmt.Errorf("an image file is required")
			}
			return runDecode(cmd, args, &opts)
		},
		SilenceUsage: true,
	}

	cmd.SetUsageTemplate(subcommandUsageTemplate)
	addDecodeFlags(cmd, &opts)
	return cmd
}

func addDecodeFlags(cmd *cobra.Command, opts *decodeOptions) {
	cmd.Flags().StringVar(&opts.lang, "lang", "", fmt.Sprintf("Message language (%s); defaults to the system locale", language.CodesLabel()))
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Save the result to a text file")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite output file without asking")
	cmd.Flags().IntVar(&opts.maxSize, "max-size", scanner.DefaultMaxSide, "Downsize images whose longest side exceeds this many pixels (0 disables)")
	cmd.Flags().StringVar(&opts.formats, "formats", "", "Comma-separated symbologies to try, in order (default: all)")
	cmd.Flags().StringVar(&opts.logFilePath, "log-file", "", "Path to save machine-readable JSONL logs")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
}

func loadConfig(cmd *cobra.Command, opts *decodeOptions) (*config.Config, error) {
	loader := config.NewLoader()
	bindings := map[string]string{
		config.KeyLang:    "lang",
		config.KeyMaxSize: "max-size",
		config.KeyFormats: "formats",
		config.KeyLogFile: "log-file",
	}
	for key, name := range bindings {
		if err := loader.BindFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, err
		}
	}
	if opts.debug {
		loader.Set(config.KeyLogLevel, "debug")
	}
	return loader.Load()
}

func runDecode(cmd *cobra.Command, args []string, opts *decodeOptions) error {
	if len(args) > 1 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: expected 1 argument but got %d. Did you forget quotes around the file path?\n", len(args))
		fmt.Fprintf(cmd.ErrOrStderr(), "  Using image: %s\n", args[0])
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logFileW, err := openLogFile(cfg.LogFile)
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel, logFileW)

	sc := scanner.New(cfg.MaxSide, scanner.WithFormats(cfg.Formats...))
	state := appstate.New(cfg.Language, sc)

	ctx, stop := signalContext()
	defer stop()

	switch state.Decode(ctx, args[0]) {
	case appstate.OutcomeDecoded:
		fmt.Fprintln(cmd.OutOrStdout(), state.DisplayedText())
		fmt.Fprintln(cmd.ErrOrStderr(), state.StatusMessage())
	case appstate.OutcomeNotFound:
		return errors.New(state.DisplayedText())
	default:
		return errors.New(state.StatusMessage())
	}

	if opts.outputPath == "" {
		return nil
	}
	path, err := newConfirmer().ResolveOutput(opts.outputPath, opts.yes)
	if err != nil {
		return err
	}
	if state.Save(path) != appstate.OutcomeSaved {
		return errors.New(state.StatusMessage())
	}
	fmt.Fprintln(cmd.ErrOrStderr(), state.StatusMessage())
	return nil
}
