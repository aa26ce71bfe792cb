package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/pointillism"
)

var (
	keyColor  = color.New(color.FgCyan, color.Bold)
	metaColor = color.New(color.Faint)
	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
)

// printer formats counts with digit grouping.
var printer = message.NewPrinter(language.English)

func newListCmd(a *app) *cobra.Command {
	var asYAML, verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available algorithms and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := a.registry.Snapshot()
			if asYAML {
				return writeYAML(cmd.OutOrStdout(), snap.List())
			}
			printList(cmd.OutOrStdout(), snap, verbose)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print descriptors as YAML")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also show skipped and hidden algorithms")
	return cmd
}

func writeYAML(w io.Writer, descs []pointillism.Descriptor) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(descs); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func printList(w io.Writer, snap *pointillism.Snapshot, verbose bool) {
	for _, d := range snap.List() {
		keyColor.Fprint(w, d.Key)
		fmt.Fprintf(w, "  %s ", d.Name)
		metaColor.Fprintf(w, "v%s by %s\n", d.Version, d.Author)
		fmt.Fprintf(w, "    %s\n", d.Description)
		for _, p := range d.Parameters {
			fmt.Fprintf(w, "      %-20s %s\n", p.Name, describeParam(p))
		}
	}

	printer.Fprintf(w, "\n%d algorithms", snap.Len())
	if n := len(snap.Skipped()); n > 0 {
		warnColor.Fprint(w, printer.Sprintf(", %d skipped", n))
	}
	fmt.Fprintln(w)

	if !verbose {
		return
	}
	for _, s := range snap.Skipped() {
		warnColor.Fprintf(w, "skipped %s: %s", s.Origin, s.Reason)
		if s.Err != nil {
			fmt.Fprintf(w, " (%v)", s.Err)
		}
		fmt.Fprintln(w)
	}
	for _, key := range snap.Hidden() {
		metaColor.Fprintf(w, "hidden %s\n", key)
	}
}

// describeParam renders the control and its default on one line.
func describeParam(p pointillism.ParameterSpec) string {
	switch p.Kind {
	case pointillism.KindSlider:
		return printer.Sprintf("slider %v..%v step %v, default %v", p.Min, p.Max, p.StepOrDefault(), p.Default)
	case pointillism.KindSelect:
		values := make([]string, len(p.Options))
		for i, o := range p.Options {
			values[i] = o.Value
		}
		return fmt.Sprintf("select %s, default %v", strings.Join(values, "|"), p.Default)
	case pointillism.KindCheckbox:
		return fmt.Sprintf("checkbox, default %v", p.Default)
	default:
		return string(p.Kind)
	}
}
