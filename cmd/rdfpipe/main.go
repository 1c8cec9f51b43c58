// Command rdfpipe streams RDF documents from one syntax to another.
//
// It reads Turtle, TriG, NTriples, or NQuads from files or standard input
// and writes NTriples or NQuads to standard output, expanding prefixed
// names and resolving relative references as it goes. Reading is fully
// streaming, so documents much larger than memory convert in constant
// space.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quadstream/quadstream/rdf"
)

type options struct {
	inputSyntax  string
	outputSyntax string
	baseURI      string
	blankPrefix  string
	prefixFile   string
	stackSize    int
	pageSize     int
	lax          bool
	variables    bool
	verbose      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "rdfpipe [flags] [input...]",
		Short: "Stream RDF documents between syntaxes",
		Long: `rdfpipe reads RDF documents and writes them as NTriples or NQuads.

Inputs may be files or "-" for standard input; with no arguments, standard
input is read. The input syntax is taken from the -i flag, the file
extension, or sniffed from the first bytes of the document.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.inputSyntax, "input", "i", "",
		"input syntax (turtle, trig, ntriples, nquads)")
	flags.StringVarP(&opts.outputSyntax, "output", "o", "",
		"output syntax (ntriples or nquads)")
	flags.StringVarP(&opts.baseURI, "base", "b", "",
		"base URI for resolving relative references")
	flags.StringVarP(&opts.blankPrefix, "blank-prefix", "p", "",
		"prefix for blank node labels")
	flags.StringVarP(&opts.prefixFile, "prefixes", "P", "",
		"YAML file of namespace prefixes to predefine")
	flags.IntVarP(&opts.stackSize, "stack-size", "k", rdf.DefaultStackSize,
		"reader node stack capacity in bytes")
	flags.IntVar(&opts.pageSize, "page-size", rdf.DefaultPageSize,
		"input page size in bytes")
	flags.BoolVarP(&opts.lax, "lax", "l", false,
		"tolerate recoverable syntax errors")
	flags.BoolVar(&opts.variables, "variables", false,
		"allow ?name and $name variable nodes")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"log every diagnostic, not just errors")

	return cmd
}

// input is one opened document with its resolved syntax.
type input struct {
	name   string
	stream *bufio.Reader
	closer io.Closer
	syntax rdf.Syntax
}

func run(opts *options, args []string) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	env := rdf.NewEnv(opts.baseURI)
	if opts.prefixFile != "" {
		if err := loadPrefixes(env, opts.prefixFile); err != nil {
			return err
		}
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	inputs, err := openInputs(opts, args)
	if err != nil {
		return err
	}
	defer func() {
		for _, in := range inputs {
			if in.closer != nil {
				in.closer.Close()
			}
		}
	}()

	writer, err := rdf.NewWriter(os.Stdout, outputSyntax(opts, inputs))
	if err != nil {
		return err
	}

	for _, in := range inputs {
		readerOpts := []rdf.ReaderOption{
			rdf.WithEnv(env),
			rdf.WithLogger(logger),
			rdf.WithStackSize(opts.stackSize),
			rdf.WithPageSize(opts.pageSize),
			rdf.WithBlankPrefix(inputBlankPrefix(opts, len(inputs))),
		}
		if opts.lax {
			readerOpts = append(readerOpts, rdf.WithLaxParsing())
		}
		if opts.variables {
			readerOpts = append(readerOpts, rdf.WithVariables())
		}

		reader, err := rdf.NewReader(in.syntax, writer, readerOpts...)
		if err != nil {
			return err
		}
		if err = reader.StartStream(in.stream, in.name); err != nil {
			return err
		}
		if err = reader.ReadDocument(); err != nil {
			reader.Finish()
			return fmt.Errorf("reading %s: %w", in.name, err)
		}
		if err = reader.Finish(); err != nil {
			return err
		}
	}

	return writer.Flush()
}

func openInputs(opts *options, args []string) ([]input, error) {
	inputs := make([]input, 0, len(args))
	for _, path := range args {
		in := input{name: path}
		if path == "-" {
			in.name = "stdin"
			in.stream = bufio.NewReader(os.Stdin)
		} else {
			file, err := os.Open(path)
			if err != nil {
				return inputs, err
			}
			in.stream = bufio.NewReader(file)
			in.closer = file
		}

		syntax, err := inputSyntax(opts, path, in.stream)
		if err != nil {
			return inputs, err
		}
		in.syntax = syntax
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// inputSyntax resolves one input's syntax from the flag, the file
// extension, or a sniff of its first bytes.
func inputSyntax(opts *options, path string, stream *bufio.Reader) (rdf.Syntax, error) {
	if opts.inputSyntax != "" {
		syntax, ok := rdf.ParseSyntax(opts.inputSyntax)
		if !ok {
			return "", fmt.Errorf("unknown input syntax %q", opts.inputSyntax)
		}
		return syntax, nil
	}

	if syntax, ok := rdf.SyntaxForPath(path); ok {
		return syntax, nil
	}

	sample, err := stream.Peek(512)
	if err != nil && err != io.EOF {
		return "", err
	}
	if syntax, ok := rdf.DetectSyntax(sample); ok {
		return syntax, nil
	}
	return "", fmt.Errorf("cannot determine syntax of %s, use -i", path)
}

// outputSyntax picks NQuads when any input can carry named graphs, so
// nothing is silently dropped.
func outputSyntax(opts *options, inputs []input) rdf.Syntax {
	if opts.outputSyntax != "" {
		if syntax, ok := rdf.ParseSyntax(opts.outputSyntax); ok {
			return syntax
		}
		return rdf.Syntax(opts.outputSyntax) // Let the writer reject it
	}

	for _, in := range inputs {
		if in.syntax == rdf.TriG || in.syntax == rdf.NQuads {
			return rdf.NQuads
		}
	}
	return rdf.NTriples
}

// inputBlankPrefix keeps blank node labels from separate documents
// distinct when several inputs are merged into one output stream.
func inputBlankPrefix(opts *options, count int) string {
	if opts.blankPrefix != "" || count == 1 {
		return opts.blankPrefix
	}
	return uuid.NewString()[:8] + "-"
}

func loadPrefixes(env *rdf.Env, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	prefixes := map[string]string{}
	if err := yaml.Unmarshal(data, &prefixes); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for name, uri := range prefixes {
		env.SetPrefix(name, uri)
	}
	return nil
}
