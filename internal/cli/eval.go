package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Labusch/internal/calc/strength"

	"github.com/spf13/cobra"
)

func evalCmd(o *options) *cobra.Command {
	var interactive bool

	c := &cobra.Command{
		Use:   "eval [Name=fraction ...]",
		Short: "Evaluate one free-form composition",
		Example: "  labusch eval W=0.5 Mo=0.5\n" +
			"  labusch eval --interactive",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := o.setup(cmd)
			if err != nil {
				return err
			}

			var members []strength.Member
			switch {
			case interactive:
				members, err = prompt(cmd.InOrStdin(), cmd.OutOrStdout(), e.catalog)
			case len(args) > 0:
				members, err = parseComposition(e.catalog, args)
			default:
				err = errors.New("no composition: pass Name=fraction arguments or --interactive")
			}
			if err != nil {
				return err
			}

			res, err := e.model.SolidSolutionStrength(members)
			if err != nil {
				return err
			}
			e.log.Debug("eval.done", "elements", res.Elements, "strength_mpa", res.Strength)
			if e.format == "json" {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	c.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for elements and fractions")
	return c
}

func parseComposition(c strength.Catalog, args []string) ([]strength.Member, error) {
	names := make([]string, 0, len(args))
	conc := make([]float64, 0, len(args))
	for _, a := range args {
		name, frac, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not Name=fraction", strength.ErrInvalidComposition, a)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(frac), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: fraction for %q: %q", strength.ErrInvalidComposition, name, frac)
		}
		names = append(names, strings.TrimSpace(name))
		conc = append(conc, v)
	}
	elements, err := strength.Resolve(c, names...)
	if err != nil {
		return nil, err
	}
	return strength.Compose(elements, conc)
}

// prompt asks for the element count, then each element and fraction. An
// unknown element or unreadable number re-asks that entry only. The count is
// capped at the catalog size.
func prompt(in io.Reader, out io.Writer, c strength.Catalog) ([]strength.Member, error) {
	sc := bufio.NewScanner(in)
	ask := func(q string) (string, error) {
		fmt.Fprint(out, q)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return strings.TrimSpace(sc.Text()), nil
	}

	fmt.Fprintln(out, "Available elements:")
	for _, n := range c.Names() {
		fmt.Fprintf(out, "- %s\n", n)
	}

	limit := len(c.Names())
	var count int
	for {
		s, err := ask("Enter the number of elements in the alloy: ")
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(s)
		if err == nil && n > 0 && n <= limit {
			count = n
			break
		}
		fmt.Fprintf(out, "Invalid number: %q. Enter an integer from 1 to %d.\n", s, limit)
	}

	members := make([]strength.Member, 0, count)
	for i := range count {
		var el strength.Element
		for {
			name, err := ask(fmt.Sprintf("Enter element %d (choose from the list above): ", i+1))
			if err != nil {
				return nil, err
			}
			el, err = c.Get(name)
			if err == nil {
				break
			}
			fmt.Fprintf(out, "Invalid element name: %s. Please choose from the list above.\n", name)
		}
		for {
			s, err := ask(fmt.Sprintf("Enter atomic fraction of %s (e.g., 0.25): ", el.Name))
			if err != nil {
				return nil, err
			}
			v, err := strconv.ParseFloat(s, 64)
			if err == nil {
				members = append(members, strength.Member{Element: el, Concentration: v})
				break
			}
			fmt.Fprintf(out, "Invalid fraction: %q.\n", s)
		}
	}
	return members, nil
}
