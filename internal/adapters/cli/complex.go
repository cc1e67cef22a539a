package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/complex-planner/internal/adapters/document"
	"github.com/andrescamacho/complex-planner/internal/application/mediator"
	"github.com/andrescamacho/complex-planner/internal/application/planner"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

// NewComplexCommand creates the complex command with subcommands
func NewComplexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complex",
		Short: "Manage stored complexes",
		Long: `Store, show, list and delete complexes kept in the planner database.

Examples:
  complex-planner complex save complex.json --name "Energy Hub"
  complex-planner complex list
  complex-planner complex show "Energy Hub" --output hub.json.zst
  complex-planner complex delete 6f1c...`,
	}

	cmd.AddCommand(newComplexSaveCommand())
	cmd.AddCommand(newComplexShowCommand())
	cmd.AddCommand(newComplexListCommand())
	cmd.AddCommand(newComplexDeleteCommand())

	return cmd
}

func newComplexSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save <document>",
		Short: "Store a complex document in the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			defer a.close()

			c, err := document.LoadFile(args[0], a.registry, a.complexOptions()...)
			if err != nil {
				return err
			}

			resp, err := mediator.SendTyped[*planner.SaveComplexResponse](a.ctx, a.mediator,
				&planner.SaveComplexCommand{Complex: c, Name: name})
			if err != nil {
				return err
			}

			if jsonOutput {
				return prettyPrint(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Complex saved")
			fmt.Fprintf(cmd.OutOrStdout(), "  ID:   %s\n", resp.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  Name: %s\n", c.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name to store the complex under")

	return cmd
}

func newComplexShowCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id-or-name>",
		Short: "Show a stored complex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := loadByIDOrName(a, args[0])
			if err != nil {
				return err
			}

			if output != "" {
				if err := document.SaveFile(output, resp.Complex); err != nil {
					return err
				}
			}
			return printReport(cmd.OutOrStdout(), resp.Report)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the complex document to a file (.zst compresses)")

	return cmd
}

// loadByIDOrName tries the argument as an id first, then as a name
func loadByIDOrName(a *app, key string) (*planner.PlanResponse, error) {
	resp, err := mediator.SendTyped[*planner.PlanResponse](a.ctx, a.mediator, &planner.LoadComplexQuery{ID: key})
	if err == nil {
		return resp, nil
	}
	var notFound *factorycomplex.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}
	return mediator.SendTyped[*planner.PlanResponse](a.ctx, a.mediator, &planner.LoadComplexQuery{Name: key})
}

func newComplexListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored complexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			defer a.close()

			summaries, err := mediator.SendTyped[[]factorycomplex.Summary](a.ctx, a.mediator, &planner.ListComplexesQuery{})
			if err != nil {
				return err
			}

			if jsonOutput {
				return prettyPrint(cmd.OutOrStdout(), summaries)
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No complexes stored")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tGAME\tUPDATED\tTEMPLATE")
			fmt.Fprintln(w, "--\t----\t----\t-------\t--------")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					s.ID, s.Name, s.GameID, s.UpdatedAt.Format("2006-01-02 15:04"), s.TemplateCode)
			}
			return w.Flush()
		},
	}
}

func newComplexDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored complex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := a.mediator.Send(a.ctx, &planner.DeleteComplexCommand{ID: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Complex %s deleted\n", args[0])
			return nil
		},
	}
}
