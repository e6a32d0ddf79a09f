package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shadercell/internal/app"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [pipelines...]",
		Short: "Compile pipelines to SPIR-V and store the artifacts",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			debug, _ := cmd.Flags().GetBool("debug")
			return c.app.Compile(cmd.Context(), app.CompileOptions{
				Pipelines: args,
				OutDir:    out,
				Debug:     debug,
			})
		},
	}
	cmd.Flags().StringP("out", "o", "", "Write artifacts to this directory instead of .shadercell/store")
	cmd.Flags().Bool("debug", false, "Keep debug names in the generated SPIR-V")
	return cmd
}

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [pipelines...]",
		Short: "Compile pipelines without writing artifacts",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Check(cmd.Context(), app.CheckOptions{Pipelines: args})
		},
	}
}
