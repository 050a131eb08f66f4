package cli

import (
	"github.com/spf13/cobra"
)

// Version is the release version reported by --version.
const Version = "2.0.1"

// Options holds the full configuration surface consumed by a run.
// Values are populated from flags and, for flags left at their defaults,
// from an optional YAML config file.
type Options struct {
	In  string
	Out string
	Sel string

	FragNew    bool
	FragAppend bool
	Reject     bool

	ContinueOnMiss       bool
	ContinueOnDuplicates bool

	MaxLineWidth   int
	SelectorDelims string
	HeaderDelims   string

	ConfigPath string
	Verbose    bool
}

// NewRootCommand creates the fastaselect command.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "fastaselect",
		Short: "Select a subset of FASTA records by header name",
		Long: `fastaselect reads an ordered list of record names and emits the matching
FASTA records in list order, in a single pass over the archive.

Matched records are flushed as soon as the next one in list order is
available, so memory holds only records that cannot be emitted yet. Inputs
compressed with gzip, zstd, or lz4 are decompressed transparently.

Examples:
  fastaselect --in genome.fasta --sel wanted.txt --out subset.fasta
  fastaselect --in reads.fasta.gz --sel ids.txt --reject
  fastaselect --in all.fasta --sel groups.txt --fragc --out part_%s.fasta`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.In, "in", "", "read FASTA records from FILE (\"-\" for stdin)")
	f.StringVar(&opts.Out, "out", "", "write selected records to FILE (default stdout); with --fragc/--fraga, a template containing %s")
	f.StringVar(&opts.Sel, "sel", "", "read the selection list from FILE (\"-\" for stdin)")
	f.BoolVar(&opts.FragNew, "fragc", false, "fan out to per-group files, none of which may already exist; groups must be contiguous in the list")
	f.BoolVar(&opts.FragAppend, "fraga", false, "fan out to per-group files, appending; groups need not be contiguous")
	f.BoolVar(&opts.Reject, "reject", false, "emit the records NOT in the selection list, in archive order")
	f.BoolVar(&opts.ContinueOnMiss, "com", false, "continue with a warning when a selector has no matching record")
	f.BoolVar(&opts.ContinueOnDuplicates, "cod", false, "continue with a warning when the selection list contains duplicates")
	f.IntVar(&opts.MaxLineWidth, "wl", 0, "maximum input line width (default 10000000)")
	f.StringVar(&opts.SelectorDelims, "ht", "", "selection list field delimiters (default \"|\\t :\"); escapes like \\t, ^A, \\x7c accepted")
	f.StringVar(&opts.HeaderDelims, "hi", "", "archive header name delimiters (default \"\\x01\\t \"); same escape syntax")
	f.StringVar(&opts.ConfigPath, "config", "", "YAML config file supplying defaults for these flags")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewVersionCommand())

	return cmd
}
