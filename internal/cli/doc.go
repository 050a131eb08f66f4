// Package cli implements the fastaselect command line interface.
//
// The CLI owns everything the stream driver treats as external: flag
// parsing, delimiter escape decoding, the optional YAML config file,
// opening of inputs and outputs, exit codes, and the single point of
// fatal diagnostic output. Components below this layer return errors;
// only this layer converts them into process exit behavior.
package cli
