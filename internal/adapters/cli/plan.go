package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/complex-planner/internal/adapters/document"
	"github.com/andrescamacho/complex-planner/internal/application/mediator"
	"github.com/andrescamacho/complex-planner/internal/application/planner"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		buildings   []string
		extractions []string
		prices      []string
		excluded    []string
		suns        int
		location    string
		name        string
		noAutoFill  bool
		saveAs      string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "plan [plan-file]",
		Short: "Plan a factory complex",
		Long: `Plan a factory complex from a plan file (YAML or JSON) and/or flags.

With auto-fill on, the cheapest buildings covering every deficit are added
and the faction producing the pivotal good is chosen to minimize the total
price.

Examples:
  complex-planner plan --building spp-argon-m:2 --suns 150
  complex-planner plan --extraction silicon-mine-teladi-m:25,10 --location kingdom-end
  complex-planner plan complex.yaml --price crystals=1500 --save "Crystal Belt"
  complex-planner plan complex.yaml --output complex.json.zst`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &planner.PlanCommand{}
			if len(args) == 1 {
				fromFile, err := readPlanFile(args[0])
				if err != nil {
					return err
				}
				req = fromFile
			}

			for _, value := range buildings {
				b, err := parseBuildingFlag(value)
				if err != nil {
					return err
				}
				req.Buildings = append(req.Buildings, b)
			}
			for _, value := range extractions {
				b, err := parseExtractionFlag(value)
				if err != nil {
					return err
				}
				req.Buildings = append(req.Buildings, b)
			}
			for _, value := range prices {
				p, err := parsePriceFlag(value)
				if err != nil {
					return err
				}
				req.Prices = append(req.Prices, p)
			}
			req.ExcludedFactions = append(req.ExcludedFactions, excluded...)
			if gameID != "" {
				req.Game = gameID
			}
			if cmd.Flags().Changed("suns") {
				req.BandPercent = &suns
			}
			if location != "" {
				req.LocationID = location
			}
			if name != "" {
				req.Name = name
			}
			if noAutoFill {
				off := false
				req.AutoFill = &off
			}

			a, err := newApp(saveAs != "")
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := mediator.SendTyped[*planner.PlanResponse](a.ctx, a.mediator, req)
			if err != nil {
				return err
			}

			if saveAs != "" {
				saved, err := mediator.SendTyped[*planner.SaveComplexResponse](a.ctx, a.mediator,
					&planner.SaveComplexCommand{Complex: resp.Complex, Name: saveAs})
				if err != nil {
					return err
				}
				resp.Report.ID = saved.ID
				resp.Report.Name = resp.Complex.Name()
			}
			if output != "" {
				if err := document.SaveFile(output, resp.Complex); err != nil {
					return err
				}
			}

			if err := printReport(cmd.OutOrStdout(), resp.Report); err != nil {
				return err
			}
			if output != "" && !jsonOutput {
				fmt.Fprintf(cmd.OutOrStdout(), "Document written to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&buildings, "building", "b", nil, "Production building as id[:quantity] (repeatable)")
	cmd.Flags().StringArrayVarP(&extractions, "extraction", "e", nil, "Extraction building as id:yield[,yield...] (repeatable)")
	cmd.Flags().StringArrayVarP(&prices, "price", "p", nil, "Custom price as good=price, good=price! marks the good unused (repeatable)")
	cmd.Flags().StringSliceVar(&excluded, "exclude-faction", nil, "Faction to exclude from exploration and kit purchases")
	cmd.Flags().IntVar(&suns, "suns", 0, "Sun percentage")
	cmd.Flags().StringVar(&location, "location", "", "Location id (overrides --suns)")
	cmd.Flags().StringVar(&name, "name", "", "Complex name")
	cmd.Flags().BoolVar(&noAutoFill, "no-auto-fill", false, "Do not synthesize buildings for deficits")
	cmd.Flags().StringVar(&saveAs, "save", "", "Store the complex in the database under this name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the complex document to a file (.zst compresses)")

	return cmd
}
