package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse game catalogs",
		Long: `List the goods, buildings, factions and locations of a game catalog.

Examples:
  complex-planner catalog goods
  complex-planner catalog buildings --game x3ap
  complex-planner catalog buildings --good crystals`,
	}

	cmd.AddCommand(newCatalogGamesCommand())
	cmd.AddCommand(newCatalogGoodsCommand())
	cmd.AddCommand(newCatalogBuildingsCommand())
	cmd.AddCommand(newCatalogFactionsCommand())
	cmd.AddCommand(newCatalogLocationsCommand())

	return cmd
}

// withCatalog runs fn against the selected catalog
func withCatalog(fn func(cmd *cobra.Command, cat *catalog.Catalog) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.close()

		cat, err := a.catalog()
		if err != nil {
			return err
		}
		return fn(cmd, cat)
	}
}

func newCatalogGamesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List available games",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDEFAULT")
			fmt.Fprintln(w, "--\t----\t-------")
			for _, c := range a.registry.Games() {
				def := ""
				if c == a.registry.Default() {
					def = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Game().ID(), c.Game().Name(), def)
			}
			return w.Flush()
		},
	}
}

func newCatalogGoodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "goods",
		Short: "List goods with their price range",
		RunE: withCatalog(func(cmd *cobra.Command, cat *catalog.Catalog) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMIN\tAVG\tMAX\tVOLUME\tMINERAL")
			fmt.Fprintln(w, "--\t----\t---\t---\t---\t------\t-------")
			for _, g := range cat.Goods() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%t\n",
					g.ID(), g.Name(), g.MinPrice(), g.AvgPrice(), g.MaxPrice(), g.Volume(), g.IsMineral())
			}
			return w.Flush()
		}),
	}
}

func newCatalogBuildingsCommand() *cobra.Command {
	var goodID string

	cmd := &cobra.Command{
		Use:   "buildings",
		Short: "List building types",
		RunE: withCatalog(func(cmd *cobra.Command, cat *catalog.Catalog) error {
			var good *catalog.Good
			if goodID != "" {
				g, err := cat.Good(goodID)
				if err != nil {
					return err
				}
				good = g
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NID\tID\tNAME\tFACTION\tSIZE\tPRICE\tPRODUCT\tRATE/H")
			fmt.Fprintln(w, "---\t--\t----\t-------\t----\t-----\t-------\t------")
			for _, b := range cat.Buildings() {
				product := b.Product()
				if good != nil && product.Good != good {
					continue
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\t%.0f\n",
					b.NID(), b.ID(), b.Name(), b.Faction().Name(), b.Size(), b.Price(), product.Good.Name(), product.Rate)
			}
			return w.Flush()
		}),
	}

	cmd.Flags().StringVar(&goodID, "good", "", "Only list producers of this good")

	return cmd
}

func newCatalogFactionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "factions",
		Short: "List factions",
		RunE: withCatalog(func(cmd *cobra.Command, cat *catalog.Catalog) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSELLS KITS\tMAKES PIVOTAL GOOD")
			fmt.Fprintln(w, "--\t----\t----------\t------------------")
			for _, f := range cat.Factions() {
				fmt.Fprintf(w, "%s\t%s\t%t\t%t\n", f.ID(), f.Name(), f.SellsKits(), cat.HasProducer(cat.PivotalGood(), f))
			}
			return w.Flush()
		}),
	}
}

func newCatalogLocationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List locations",
		RunE: withCatalog(func(cmd *cobra.Command, cat *catalog.Catalog) error {
			locations := cat.Locations()
			if len(locations) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "This game has no locations")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tX\tY\tFACTION\tSUNS\tSHIPYARD")
			fmt.Fprintln(w, "--\t----\t-\t-\t-------\t----\t--------")
			for _, l := range locations {
				faction := "-"
				if l.Faction() != nil {
					faction = l.Faction().Name()
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%d\t%t\n",
					l.ID(), l.Name(), l.X(), l.Y(), faction, l.BandPercent(), l.HasShipyard())
			}
			return w.Flush()
		}),
	}
}
