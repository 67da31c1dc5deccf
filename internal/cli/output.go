package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"Labusch/internal/calc/premium/recommend"
	"Labusch/internal/calc/strength"
	"Labusch/internal/calc/sweep"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printElements(w io.Writer, elements []strength.Element) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ELEMENT\tG (GPa)\tLATTICE MISFIT\tMODULUS MISMATCH\tALPHA")
	for _, e := range elements {
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%g\n", e.Name, e.ShearModulus, e.LatticeMisfit, e.ModulusMismatch, e.Alpha)
	}
	return tw.Flush()
}

func printResult(w io.Writer, r strength.Result) {
	fmt.Fprintf(w, "Weighted Average Shear Modulus (G): %.6f GPa\n", r.ShearModulus)
	fmt.Fprintf(w, "Solid Solution Strengthening Contribution: %.6f MPa\n", r.Strength)
}

func printTable(w io.Writer, names []string, results []strength.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, n := range names {
		fmt.Fprintf(tw, "%s (%%)\t", n)
	}
	fmt.Fprintln(tw, "G (GPa)\tStrength (MPa)\t")
	for _, r := range results {
		for _, c := range r.Concentrations {
			fmt.Fprintf(tw, "%.1f\t", c*100)
		}
		fmt.Fprintf(tw, "%.6f\t%.6f\t\n", r.ShearModulus, r.Strength)
	}
	return tw.Flush()
}

func printBest(w io.Writer, best strength.Result) {
	parts := make([]string, len(best.Elements))
	for i, n := range best.Elements {
		parts[i] = fmt.Sprintf("%s: %.2f", n, best.Concentrations[i])
	}
	fmt.Fprintf(w, "Highest Solid Solution Strength: %.2f MPa\n", best.Strength)
	fmt.Fprintf(w, "Composition: %s\n", strings.Join(parts, ", "))
	fmt.Fprintf(w, "Shear Modulus (G): %.2f GPa\n", best.ShearModulus)
}

func printOutcome(w io.Writer, out sweep.Outcome, all bool) error {
	fmt.Fprintf(w, "System: %s   exponent %s   step %g   points %d\n\n",
		strings.Join(out.Elements, "-"), out.Exponent, out.Step, out.Points)
	if all {
		if err := printTable(w, out.Elements, out.Results); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	printBest(w, out.Best)
	return nil
}

func printRanking(w io.Writer, r recommend.Ranking) error {
	fmt.Fprintf(w, "Top %d of %d pairs   exponent %s   step %g\n\n", len(r.Top), r.Pairs, r.Exponent, r.Step)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPAIR\tCOMPOSITION\tG (GPa)\tSTRENGTH (MPa)")
	for i, p := range r.Top {
		comp := make([]string, len(p.Best.Elements))
		for j, n := range p.Best.Elements {
			comp[j] = fmt.Sprintf("%s%.2f", n, p.Best.Concentrations[j])
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%.2f\n", i+1, strings.Join(p.Elements, "-"),
			strings.Join(comp, " "), p.Best.ShearModulus, p.Best.Strength)
	}
	return tw.Flush()
}
