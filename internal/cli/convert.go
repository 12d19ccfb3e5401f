package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmndot/pkg/config"
	"github.com/matzehuels/bpmndot/pkg/pipeline"
)

// convertFlags holds the command-line flags of the root command.
type convertFlags struct {
	output            string  // output file (single format) or base path (multiple)
	formats           string  // comma-separated output formats
	showFlows         bool    // label edges with their sequence flow id
	showPackageNames  bool    // keep the package part of Java class names
	showErrorHandling bool    // keep boundary events and the exception subprocess
	showTaskListeners bool    // list user task listeners
	exceptionName     string  // name of the error-handling subprocess
	pngScale          float64 // PNG resolution multiplier
	noCache           bool    // bypass the render cache
}

// convertCommand creates the conversion command used as the CLI root.
func (c *CLI) convertCommand() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "bpmndot [input_file]",
		Short: "bpmndot converts BPMN process definitions to Graphviz diagrams",
		Long: `bpmndot reads a BPMN 2.0 process definition and writes it as a Graphviz
digraph. Tasks, events and gateways become nodes, sequence flows become edges
and subprocesses become clusters. The error-handling region is left out
unless --show-error-handling is given.

A graph written with -f json can be given as input again; it is converted
exactly like the BPMN file it was exported from.`,
		Example: `  bpmndot order.bpmn
  bpmndot order.bpmn -f svg,png -o diagrams/order
  bpmndot order.bpmn --show-flows --show-task-listeners --config bpmndot.toml`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := buildOptions(cmd, args[0], &flags, cfg)
			return c.runConvert(cmd.Context(), opts, flags.output, cfg, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output-file", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): dot (default), svg, png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&flags.showFlows, "show-flows", false, "show sequence flow ids on edges")
	cmd.Flags().BoolVar(&flags.showPackageNames, "show-package-names", false, "show fully qualified Java class names")
	cmd.Flags().BoolVar(&flags.showErrorHandling, "show-error-handling", false, "keep boundary events and the exception subprocess")
	cmd.Flags().BoolVar(&flags.showTaskListeners, "show-task-listeners", false, "list task listeners on user tasks")
	cmd.Flags().StringVar(&flags.exceptionName, "exception-subprocess-name", pipeline.DefaultExceptionSubprocessName, "name of the subprocess that handles errors")
	cmd.Flags().Float64Var(&flags.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// buildOptions layers the config file over the defaults and explicitly set
// flags over the config file.
func buildOptions(cmd *cobra.Command, input string, flags *convertFlags, cfg *config.File) pipeline.Options {
	opts := pipeline.Options{Input: input}
	cfg.Apply(&opts)

	changed := cmd.Flags().Changed
	if changed("format") {
		opts.Formats = pipeline.ParseFormats(flags.formats)
	}
	if changed("show-flows") {
		opts.ShowFlows = flags.showFlows
	}
	if changed("show-package-names") {
		opts.ShowPackageNames = flags.showPackageNames
	}
	if changed("show-error-handling") {
		opts.ShowErrorHandling = flags.showErrorHandling
	}
	if changed("show-task-listeners") {
		opts.ShowTaskListeners = flags.showTaskListeners
	}
	if changed("exception-subprocess-name") || opts.ExceptionSubprocessName == "" {
		opts.ExceptionSubprocessName = flags.exceptionName
	}
	if changed("png-scale") || opts.PNGScale == 0 {
		opts.PNGScale = flags.pngScale
	}
	return opts
}

// runConvert executes the pipeline and writes the artifacts. Nothing is
// written unless every requested format rendered.
func (c *CLI) runConvert(ctx context.Context, opts pipeline.Options, output string, cfg *config.File, noCache bool) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	logger.Infof("Converting %s", opts.Input)

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %d of %d objects", result.Stats.ItemCount, result.Stats.LoadedCount))

	paths := pipeline.OutputPaths(opts.Input, output, opts.Formats)
	written, err := writeArtifacts(result.Artifacts, opts.Formats, paths)
	if err != nil {
		return err
	}

	printKeyValue("Input file", opts.Input)
	for _, path := range written {
		printKeyValue("Output file", path)
	}
	printSuccess("%d objects from %s written to %s", result.Stats.ItemCount, opts.Input, strings.Join(written, ", "))
	printStats(result.Stats.ItemCount, result.Stats.RemovedCount, result.CacheInfo.RenderHit)

	if len(opts.Formats) == 1 && opts.Formats[0] == pipeline.FormatDOT {
		printNextStep("Render it", fmt.Sprintf("bpmndot %s -f svg", opts.Input))
	}
	return nil
}

// writeArtifacts writes each format to its path, in format order, and
// returns the written paths. Every artifact goes to a temp file next to its
// destination first and is renamed into place only once all of them were
// written; on error no output file is left behind.
func writeArtifacts(artifacts map[string][]byte, formats []string, paths map[string]string) ([]string, error) {
	temps := make([]string, 0, len(formats))
	cleanup := func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}

	for _, format := range formats {
		tmp, err := writeTemp(paths[format], artifacts[format])
		if err != nil {
			cleanup()
			return nil, err
		}
		temps = append(temps, tmp)
	}

	written := make([]string, 0, len(formats))
	for i, format := range formats {
		path := paths[format]
		if err := os.Rename(temps[i], path); err != nil {
			for _, done := range written {
				os.Remove(done)
			}
			temps = temps[i:]
			cleanup()
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// writeTemp writes data to a new temp file in the directory of path.
func writeTemp(path string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	tmp := f.Name()
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp, 0o644)
	}
	if err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return tmp, nil
}
