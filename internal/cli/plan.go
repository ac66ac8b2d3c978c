package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/layout"
	"github.com/matzehuels/idphoto/pkg/pipeline"
	"github.com/matzehuels/idphoto/pkg/printing"
)

// planOutput is the --json shape of the plan command.
type planOutput struct {
	Photo catalog.PhotoSpec `json:"photo"`
	Paper catalog.PaperSpec `json:"paper"`
	Plan  layout.Plan       `json:"plan"`
	Page  printing.Page     `json:"page"`
	Tiles []layout.Tile     `json:"tiles,omitempty"`
}

// planCommand creates the plan command for inspecting a layout without rendering.
func (c *CLI) planCommand() *cobra.Command {
	var (
		flags    pipeline.Options
		asJSON   bool
		withTile bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show how many photos fit on a sheet",
		Long: `Show the layout plan for a photo size on a paper size: the grid, whether the
sheet is rotated, the centering margins and the sheet size in 300 DPI pixels.

No photo is needed; nothing is rendered.`,
		Example: `  idphoto plan --photo 2inch --paper a4
  idphoto plan --photo 1inch --paper 6inch --orientation portrait --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd.Context(), cmd.OutOrStdout(), flags, asJSON, withTile)
		},
	}

	cmd.Flags().StringVarP(&flags.Photo, "photo", "p", "", "photo size id")
	cmd.Flags().StringVar(&flags.Paper, "paper", "", "paper size id")
	cmd.Flags().StringVar(&flags.Orientation, "orientation", "", "paper orientation: auto (default), portrait, landscape")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	cmd.Flags().BoolVar(&withTile, "tiles", false, "include every tile position (with --json)")

	return cmd
}

func (c *CLI) runPlan(ctx context.Context, w io.Writer, flags pipeline.Options, asJSON, withTiles bool) error {
	runner := c.newRunner(true)
	defer runner.Close()

	sel, plan, err := runner.Plan(ctx, c.options(flags))
	if err != nil {
		return err
	}
	page := printing.PageFor(plan, sel.Paper.Size)

	if asJSON {
		out := planOutput{Photo: sel.Photo, Paper: sel.Paper, Plan: plan, Page: page}
		if withTiles {
			out.Tiles = plan.Tiles()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if !sel.PhotoFound {
		printWarning("unknown photo size %q, using %s", flags.Photo, sel.Photo.ID)
	}
	if !sel.PaperFound {
		printWarning("unknown paper size %q, using %s", flags.Paper, sel.Paper.ID)
	}

	printKeyValue("Photo", fmt.Sprintf("%s  %s", sel.Photo.Label, StyleDim.Render(sel.Photo.Size.String())))
	printKeyValue("Paper", fmt.Sprintf("%s  %s", sel.Paper.Label, StyleDim.Render(sel.Paper.Size.String())))
	printKeyValue("Grid", StyleNumber.Render(plan.Summary()))
	printKeyValue("Sheet", fmt.Sprintf("%d×%d px", plan.ContainerWidth, plan.ContainerHeight))
	printKeyValue("Tile", fmt.Sprintf("%d×%d px", plan.TargetWidth, plan.TargetHeight))
	printKeyValue("Margins", fmt.Sprintf("%.1f / %.1f px", plan.MarginX, plan.MarginY))
	printKeyValue("Print", page.String())

	if plan.Empty() {
		printNewline()
		printWarning("the photo does not fit on this paper")
		return nil
	}
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s render <photo> --photo %s --paper %s", appName, sel.Photo.ID, sel.Paper.ID))
	return nil
}
