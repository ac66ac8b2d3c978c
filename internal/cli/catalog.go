package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/layout"
	"github.com/matzehuels/idphoto/pkg/render"
)

// catalogCommand creates the catalog command with photos and papers subcommands.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the available photo and paper sizes",
		Long: `List the available photo and paper sizes, including custom sizes from the
config file and --catalog.`,
	}

	cmd.AddCommand(c.catalogPhotosCommand())
	cmd.AddCommand(c.catalogPapersCommand())
	cmd.AddCommand(c.catalogBackgroundsCommand())

	return cmd
}

func (c *CLI) catalogPhotosCommand() *cobra.Command {
	var paper string

	cmd := &cobra.Command{
		Use:   "photos",
		Short: "List photo sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.Catalog.Paper(c.pickID(paper, c.Config.Paper))
			column := "Per " + p.DisplayName()
			fmt.Fprintln(cmd.OutOrStdout(), specTable(c.Catalog.Photos(), column, func(s catalog.Spec) string {
				return fitsColumn(s.Size, p.Size)
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&paper, "paper", "", "paper used for the per-sheet column")
	return cmd
}

func (c *CLI) catalogPapersCommand() *cobra.Command {
	var photo string

	cmd := &cobra.Command{
		Use:   "papers",
		Short: "List paper sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ph := c.Catalog.Photo(c.pickID(photo, c.Config.Photo))
			column := ph.DisplayName() + " per sheet"
			fmt.Fprintln(cmd.OutOrStdout(), specTable(c.Catalog.Papers(), column, func(s catalog.Spec) string {
				return fitsColumn(ph.Size, s.Size)
			}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&photo, "photo", "p", "", "photo used for the per-sheet column")
	return cmd
}

func (c *CLI) catalogBackgroundsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backgrounds",
		Short: "List background presets",
		Long: `List the named background presets. Any hex value, rgb()/rgba() value or
CSS colour name is accepted as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), backgroundTable(render.BackgroundPresets, c.Config.Background))
			return nil
		},
	}
}

// pickID returns flag, or the configured value when flag is empty.
func (c *CLI) pickID(flag, configured string) string {
	if flag != "" {
		return flag
	}
	return configured
}

// fitsColumn describes how many photos fit on paper with auto orientation.
func fitsColumn(photo, paper catalog.Dimension) string {
	plan := layout.Compute(photo, paper, layout.Auto)
	if plan.Empty() {
		return "—"
	}
	s := fmt.Sprintf("%d (%d×%d)", plan.TotalPhotos, plan.Rows, plan.Cols)
	if plan.IsRotated {
		s += " ↻"
	}
	return s
}
