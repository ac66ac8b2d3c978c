package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/idphoto/pkg/catalog"
)

// pickCommand creates the interactive pick command.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		flags  optionFlags
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "pick <photo>",
		Short: "Choose photo and paper sizes interactively, then render",
		Long: `Choose the photo size and paper size from interactive lists, then render
and export the sheet. The paper list shows how many photos fit on each paper.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.options(flags.opts)

			photo, ok, err := runPicker(ctx, NewSpecListModel("Select Photo Size", c.Catalog.Photos(), opts.Photo))
			if err != nil || !ok {
				return err
			}
			paperList := NewSpecListModel("Select Paper Size", c.Catalog.Papers(), opts.Paper)
			paperList.Column = photo.DisplayName() + " per sheet"
			paperList.Describe = func(s catalog.Spec) string { return fitsColumn(photo.Size, s.Size) }
			paper, ok, err := runPicker(ctx, paperList)
			if err != nil || !ok {
				return err
			}

			flags.opts.Photo, flags.opts.Paper = photo.ID, paper.ID
			return c.runRender(ctx, args[0], flags, []string{paper.ID}, "", c.outDir(outDir))
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for exported sheets (default from config, else .)")

	return cmd
}

// runPicker shows m and returns the chosen spec. ok is false when the user
// quit without choosing.
func runPicker(ctx context.Context, m SpecListModel) (catalog.Spec, bool, error) {
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return catalog.Spec{}, false, fmt.Errorf("picker: %w", err)
	}
	result, _ := final.(SpecListModel)
	if result.Selected == nil {
		printInfo("Nothing selected")
		return catalog.Spec{}, false, nil
	}
	return *result.Selected, true, nil
}
