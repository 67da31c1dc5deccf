package cli

import (
	"fmt"
	"os"

	"Labusch/internal/calc/premium/autodesign"
	"Labusch/internal/calc/premium/exporter"
	"Labusch/internal/calc/premium/recommend"
	"Labusch/internal/calc/report"
	"Labusch/internal/calc/sweep"

	"github.com/spf13/cobra"
)

func elementsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "elements",
		Short: "List the element catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := o.setup(cmd)
			if err != nil {
				return err
			}
			if e.format == "json" {
				return writeJSON(cmd.OutOrStdout(), e.catalog.Elements())
			}
			return printElements(cmd.OutOrStdout(), e.catalog.Elements())
		},
	}
}

func binaryCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "binary A B",
		Short:   "Sweep every A-B composition on the grid",
		Example: "  labusch binary W Mo --step 0.05",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, o, args, true)
		},
	}
}

func ternaryCmd(o *options) *cobra.Command {
	var all bool
	c := &cobra.Command{
		Use:     "ternary A B C",
		Short:   "Sweep the A-B-C composition triangle and report the strongest point",
		Example: "  labusch ternary Nb Ta W --exponent 2/3",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, o, args, all)
		},
	}
	c.Flags().BoolVar(&all, "all", false, "Print every grid point, not only the best")
	return c
}

func runSweep(cmd *cobra.Command, o *options, names []string, all bool) error {
	e, err := o.setup(cmd)
	if err != nil {
		return err
	}
	out, err := e.runner().Run(cmd.Context(), sweep.Request{Elements: names})
	if err != nil {
		return err
	}
	e.log.Debug("sweep.done", "elements", out.Elements, "points", out.Points, "best_mpa", out.Best.Strength)

	if err := o.publish(e, out); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if e.format == "json" {
		if !all {
			out.Results = nil
		}
		return writeJSON(w, out)
	}
	return printOutcome(w, out, all)
}

// publish hands the sweep to the file sinks requested by --xlsx and --pdf.
func (o *options) publish(e *env, out sweep.Outcome) error {
	var (
		sinks []sweep.Sink
		wb    *exporter.Workbook
		pdf   *report.PDF
	)
	if o.xlsx != "" {
		wb = &exporter.Workbook{Exponent: out.Exponent, Step: out.Step}
		defer wb.Close()
		sinks = append(sinks, wb)
	}
	if o.pdf != "" {
		pdf = &report.PDF{Exponent: out.Exponent, Step: out.Step}
		sinks = append(sinks, pdf)
	}
	if len(sinks) == 0 {
		return nil
	}
	if _, err := sweep.Publish(out.Results, sinks...); err != nil {
		return err
	}

	if wb != nil {
		if err := wb.SaveAs(o.xlsx); err != nil {
			return fmt.Errorf("write %s: %w", o.xlsx, err)
		}
		e.log.Info("xlsx.written", "path", o.xlsx)
	}
	if pdf != nil {
		f, err := os.Create(o.pdf)
		if err != nil {
			return err
		}
		if err := pdf.Write(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", o.pdf, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		e.log.Info("pdf.written", "path", o.pdf)
	}
	return nil
}

func optimizeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "optimize A B [C]",
		Short: "Find the strongest binary or ternary composition",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := o.setup(cmd)
			if err != nil {
				return err
			}
			d, err := autodesign.Optimize(cmd.Context(), e.runner(), autodesign.Input{Elements: args})
			if err != nil {
				return err
			}
			if e.format == "json" {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Searched %d compositions (exponent %s, step %g)\n", d.Points, d.Exponent, d.Step)
			printBest(cmd.OutOrStdout(), d.Best)
			return nil
		},
	}
}

func recommendCmd(o *options) *cobra.Command {
	var top int
	c := &cobra.Command{
		Use:   "recommend",
		Short: "Rank catalog element pairs by their strongest binary alloy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := o.setup(cmd)
			if err != nil {
				return err
			}
			r, err := recommend.Pairs(cmd.Context(), e.catalog, e.model, e.step, top, e.points)
			if err != nil {
				return err
			}
			if e.format == "json" {
				return writeJSON(cmd.OutOrStdout(), r)
			}
			return printRanking(cmd.OutOrStdout(), r)
		},
	}
	c.Flags().IntVar(&top, "top", recommend.DefaultTop, "Number of pairs to show")
	return c
}
