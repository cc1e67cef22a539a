package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/complex-planner/internal/adapters/document"
	"github.com/andrescamacho/complex-planner/internal/application/mediator"
	"github.com/andrescamacho/complex-planner/internal/application/planner"
)

// NewTemplateCommand creates the template command with subcommands
func NewTemplateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Work with template codes",
		Long: `Template codes are compact base-64 strings describing the enabled
buildings of a complex together with its game and suns or location.`,
	}

	cmd.AddCommand(newTemplateDecodeCommand())
	cmd.AddCommand(newTemplateValidateCommand())
	cmd.AddCommand(newTemplateEncodeCommand())

	return cmd
}

// newTemplateDecodeCommand creates the template decode subcommand
func newTemplateDecodeCommand() *cobra.Command {
	var (
		autoFill bool
		name     string
		saveAs   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "decode <code>",
		Short: "Decode a template code into a complex",
		Long: `Decode a template code and print the resulting complex.

Buildings synthesized when the code was made come back as user buildings;
pass --auto-fill to let the optimizer fill remaining deficits.

Example:
  complex-planner template decode AJYBAQIA --auto-fill`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(saveAs != "")
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := mediator.SendTyped[*planner.PlanResponse](a.ctx, a.mediator,
				&planner.DecodeTemplateCommand{Code: args[0], Name: name, AutoFill: autoFill})
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

			return printReport(cmd.OutOrStdout(), resp.Report)
		},
	}

	cmd.Flags().BoolVar(&autoFill, "auto-fill", false, "Synthesize buildings for remaining deficits")
	cmd.Flags().StringVar(&name, "name", "", "Complex name")
	cmd.Flags().StringVar(&saveAs, "save", "", "Store the complex in the database under this name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the complex document to a file (.zst compresses)")

	return cmd
}

// newTemplateValidateCommand creates the template validate subcommand
func newTemplateValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <code>",
		Short: "Check a template code",
		Long: `Check whether a template code decodes. Exits non-zero when it does not.

Example:
  complex-planner template validate AJYBAQIA`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := mediator.SendTyped[*planner.ValidateTemplateResponse](a.ctx, a.mediator,
				&planner.ValidateTemplateQuery{Code: args[0]})
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := prettyPrint(cmd.OutOrStdout(), resp); err != nil {
					return err
				}
			} else if resp.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Template code is valid")
			}
			if !resp.Valid {
				return fmt.Errorf("template code is invalid: %s", resp.Reason)
			}
			return nil
		},
	}

	return cmd
}

// newTemplateEncodeCommand creates the template encode subcommand
func newTemplateEncodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <document>",
		Short: "Print the template code of a complex document",
		Long: `Load a complex document (.json, or .zst compressed) and print its template code.

Example:
  complex-planner template encode complex.json.zst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.close()

			c, err := document.LoadFile(args[0], a.registry, a.complexOptions()...)
			if err != nil {
				return err
			}

			resp, err := mediator.SendTyped[*planner.EncodeTemplateResponse](a.ctx, a.mediator,
				&planner.EncodeTemplateQuery{Complex: c})
			if err != nil {
				return err
			}

			if jsonOutput {
				return prettyPrint(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Code)
			return nil
		},
	}

	return cmd
}
