package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/andrescamacho/complex-planner/internal/application/planner"
)

// printReport renders a complex report as tables, or JSON with --json
func printReport(out io.Writer, r *planner.Report) error {
	if jsonOutput {
		return prettyPrint(out, r)
	}

	fmt.Fprintf(out, "%s (%s)\n", r.Name, r.Game)
	fmt.Fprintln(out, strings.Repeat("=", len(r.Name)+len(r.Game)+3))
	if r.ID != "" {
		fmt.Fprintf(out, "ID:        %s\n", r.ID)
	}
	if r.Location != "" {
		fmt.Fprintf(out, "Location:  %s\n", r.Location)
	}
	fmt.Fprintf(out, "Suns:      %d %%\n", r.BandPercent)
	fmt.Fprintf(out, "Auto-fill: %t\n", r.AutoFill)
	fmt.Fprintf(out, "Template:  %s\n\n", r.TemplateCode)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BUILDING\tQTY\tYIELDS\tPRICE\tSOURCE")
	fmt.Fprintln(w, "--------\t---\t------\t-----\t------")
	for _, b := range r.Buildings {
		source := "user"
		switch {
		case b.Synthesized:
			source = "auto"
		case b.Disabled:
			source = "disabled"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\n", b.Name, b.Quantity, formatYields(b.Yields), b.Price, source)
	}
	w.Flush()

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GOOD\tPRODUCED/H\tCONSUMED/H\tNET/H\tPRICE\tPROFIT/H")
	fmt.Fprintln(w, "----\t----------\t----------\t-----\t-----\t--------")
	for _, g := range r.Goods {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%+.2f\t%d\t%.0f\n", g.Name, g.Produced, g.Consumed, g.Net, g.Price, g.Profit)
	}
	w.Flush()
	fmt.Fprintf(out, "Profit per hour: %.0f\n", r.Profit)

	if len(r.Deficits) > 0 {
		fmt.Fprintln(out, "\nUnresolved deficits:")
		for _, d := range r.Deficits {
			fmt.Fprintf(out, "  %s: %.2f/h\n", d.Name, d.Consumed-d.Produced)
		}
	}

	fmt.Fprintln(out, "\nShopping list:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BUILDING\tQTY\tBUILT\tLEFT\tPRICE\tNEAREST SHIPYARD")
	fmt.Fprintln(w, "--------\t---\t-----\t----\t-----\t----------------")
	for _, s := range r.Shopping {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n", s.Name, s.Quantity, s.Built, s.Left, s.Price, orDash(s.NearestManufacturer))
	}
	fmt.Fprintf(w, "Complex construction kit\t%d\t%d\t%d\t%d\t%s\n",
		r.KitQuantity, r.KitsBuilt, r.KitQuantity-r.KitsBuilt, r.KitPrice, orDash(r.KitSeller))
	w.Flush()

	fmt.Fprintf(out, "\nBuildings: %d  Total price: %d  Still to buy: %d\n", r.TotalCount, r.TotalPrice, r.RestPrice)
	return nil
}

func formatYields(yields []int) string {
	if len(yields) == 0 {
		return "-"
	}
	parts := make([]string, len(yields))
	for i, y := range yields {
		parts[i] = fmt.Sprint(y)
	}
	return strings.Join(parts, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
