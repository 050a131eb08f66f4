package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/BioUbuntuLab/fastaselect/internal/engine"
	"github.com/BioUbuntuLab/fastaselect/internal/fio"
	"github.com/BioUbuntuLab/fastaselect/internal/fragment"
	"github.com/BioUbuntuLab/fastaselect/internal/keyset"
)

func run(cmd *cobra.Command, opts *Options) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	if opts.ConfigPath != "" {
		cfg, err := LoadConfig(opts.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		applyConfig(cmd, opts, cfg)
	}

	// Configuration errors are all detected before anything is opened.
	if opts.In == "" {
		return NewExitError(ExitCommandError, "no --in archive specified")
	}
	if opts.Sel == "" {
		return NewExitError(ExitCommandError, "no --sel selection list specified")
	}
	if opts.FragNew && opts.FragAppend {
		return NewExitError(ExitCommandError, "--fragc and --fraga are mutually exclusive")
	}
	mode := fragment.ModeOff
	switch {
	case opts.FragNew:
		mode = fragment.ModeNew
	case opts.FragAppend:
		mode = fragment.ModeAppend
	}
	if mode != fragment.ModeOff && opts.Reject {
		return NewExitError(ExitCommandError, "--reject cannot be combined with --fragc or --fraga")
	}

	selDelims, err := decodeDelims(opts.SelectorDelims, keyset.DefaultSelectorDelimiters)
	if err != nil {
		return WrapExitError(ExitCommandError, "selection delimiter string had a syntax error", err)
	}
	hdrDelims, err := decodeDelims(opts.HeaderDelims, engine.DefaultHeaderDelimiters)
	if err != nil {
		return WrapExitError(ExitCommandError, "header delimiter string had a syntax error", err)
	}

	var router *fragment.Router
	if mode != fragment.ModeOff {
		router, err = fragment.New(mode, opts.Out)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid fragment output template", err)
		}
	}

	set, err := buildSet(opts, mode, selDelims)
	if err != nil {
		return WrapExitError(ExitRunFailure, "could not build selection set", err)
	}
	slog.Debug("selection set built", "selectors", set.Len())

	archive, err := fio.Open(opts.In)
	if err != nil {
		return WrapExitError(ExitRunFailure, "could not open archive", err)
	}
	defer archive.Close()

	out, closeOut, err := openOutput(cmd, opts, mode)
	if err != nil {
		return WrapExitError(ExitRunFailure, "could not open output", err)
	}
	bw := bufio.NewWriter(out)

	res, runErr := engine.Run(set, archive, bw, router, engine.Options{
		Reject:         opts.Reject,
		FragmentMode:   mode,
		ContinueOnMiss: opts.ContinueOnMiss,
		MaxLineWidth:   opts.MaxLineWidth,
		HeaderDelims:   hdrDelims,
	})

	flushErr := bw.Flush()
	var closeErr error
	if router != nil {
		closeErr = router.Close()
	}
	if closeOut != nil {
		if err := closeOut(); err != nil && closeErr == nil {
			closeErr = err
		}
	}

	if runErr != nil {
		var re *engine.RunError
		if errors.As(runErr, &re) && re.Code == engine.ErrCodeMissingSelectors {
			// One diagnostic line per unmatched selector, then the summary.
			for _, name := range re.Selectors {
				fatalColor.Fprintf(cmd.ErrOrStderr(), "fastaselect: fatal error: did not find selector: %s\n", name)
			}
			return NewExitError(ExitRunFailure,
				fmt.Sprintf("%d selector(s) not found in archive", len(re.Selectors)))
		}
		return WrapExitError(ExitRunFailure, "selection failed", runErr)
	}
	if flushErr != nil {
		return WrapExitError(ExitRunFailure, "could not write output", flushErr)
	}
	if closeErr != nil {
		return WrapExitError(ExitRunFailure, "could not close output", closeErr)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "fastaselect: status: selectors: %d, records read: %d, emitted: %d\n",
		res.Selectors, res.Records, res.Emitted)
	return nil
}

// buildSet reads the selection list and constructs the sorted,
// deduplicated selection set.
func buildSet(opts *Options, mode fragment.Mode, delims *keyset.DelimSet) (*keyset.Set, error) {
	selIn, err := fio.Open(opts.Sel)
	if err != nil {
		return nil, err
	}
	defer selIn.Close()

	return keyset.Build(selIn, keyset.Options{
		Delimiters:   delims,
		Fragment:     mode != fragment.ModeOff,
		LenientDups:  opts.ContinueOnDuplicates,
		MaxLineWidth: opts.MaxLineWidth,
	})
}

// openOutput resolves the single-stream output destination. In fragment
// mode all writes go through the router, so the plain output is unused.
func openOutput(cmd *cobra.Command, opts *Options, mode fragment.Mode) (io.Writer, func() error, error) {
	if mode != fragment.ModeOff || opts.Out == "" || opts.Out == "-" {
		return cmd.OutOrStdout(), nil, nil
	}
	return fio.Create(opts.Out)
}

// decodeDelims decodes the escaped delimiter flag value, falling back to
// the built-in default when the flag is unset.
func decodeDelims(flagValue, fallback string) (*keyset.DelimSet, error) {
	chars := fallback
	if flagValue != "" {
		decoded, err := DecodeEscapes(flagValue)
		if err != nil {
			return nil, err
		}
		chars = decoded
	}
	d := keyset.NewDelimSet(chars)
	return &d, nil
}

// applyConfig fills in options the user did not set on the command line
// from the config file.
func applyConfig(cmd *cobra.Command, opts *Options, cfg FileConfig) {
	f := cmd.Flags()
	if !f.Changed("in") && cfg.In != "" {
		opts.In = cfg.In
	}
	if !f.Changed("out") && cfg.Out != "" {
		opts.Out = cfg.Out
	}
	if !f.Changed("sel") && cfg.Sel != "" {
		opts.Sel = cfg.Sel
	}
	if !f.Changed("fragc") && !f.Changed("fraga") {
		switch cfg.Fragment {
		case "new":
			opts.FragNew = true
		case "append":
			opts.FragAppend = true
		}
	}
	if !f.Changed("reject") && cfg.Reject {
		opts.Reject = true
	}
	if !f.Changed("com") && cfg.ContinueOnMiss {
		opts.ContinueOnMiss = true
	}
	if !f.Changed("cod") && cfg.ContinueOnDuplicates {
		opts.ContinueOnDuplicates = true
	}
	if !f.Changed("wl") && cfg.MaxLineWidth > 0 {
		opts.MaxLineWidth = cfg.MaxLineWidth
	}
	if !f.Changed("ht") && cfg.SelectorDelims != "" {
		opts.SelectorDelims = cfg.SelectorDelims
	}
	if !f.Changed("hi") && cfg.HeaderDelims != "" {
		opts.HeaderDelims = cfg.HeaderDelims
	}
}
