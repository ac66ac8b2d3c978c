package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/idphoto/pkg/errors"
	"github.com/matzehuels/idphoto/pkg/export"
	"github.com/matzehuels/idphoto/pkg/pipeline"
	"github.com/matzehuels/idphoto/pkg/render"
)

// renderCommand creates the render command for producing printable sheets.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  optionFlags
		papers string
		output string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "render <photo>",
		Short: "Tile a photo onto a printable sheet",
		Long: `Render a sheet with as many copies of the photo as fit on the paper.

The photo is cropped to the photo size's aspect ratio and tiled at 300 DPI.
Sheets are written as PNG named <photo>-<paper>-<timestamp>.png unless -o is
given. Several papers can be rendered at once with a comma-separated --paper.`,
		Example: `  idphoto render me.jpg --photo 1inch --paper 6inch -b blue
  idphoto render me.jpg --paper a4,6inch,5inch --out-dir sheets
  idphoto render me.jpg -o sheet.png --crop smart`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := splitList(papers)
			if output != "" && len(list) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "-o names a single file; use --out-dir with several papers")
			}
			return c.runRender(cmd.Context(), args[0], flags, list, output, c.outDir(outDir))
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&papers, "paper", "", "paper size id(s), comma-separated")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single paper)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for exported sheets (default from config, else .)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, flags optionFlags, papers []string, output, outDir string) error {
	runner := c.newRunner(flags.noCache)
	defer runner.Close()

	opts := c.options(flags.opts)
	if len(papers) == 0 {
		papers = []string{opts.Paper}
	}
	src := render.FileSource{Path: input}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	spinner.Start()
	prog := newProgress(c.Logger)

	results, err := runner.ExecuteAll(ctx, src, opts, papers)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	now := time.Now
	for _, res := range results {
		path, err := saveSheet(res, output, outDir, now)
		if err != nil {
			return err
		}
		printSuccess("%s on %s", res.Selection.Photo.DisplayName(), res.Selection.Paper.DisplayName())
		printFile(path)
		printStats(res.Stats.Tiles, fmt.Sprintf("%d×%d px", res.Stats.Width, res.Stats.Height), res.Stats.Bytes, res.CacheInfo.SheetHit)
		if res.Plan.Empty() {
			printWarning("the photo does not fit on %s; the sheet is blank", res.Selection.Paper.ID)
		}
	}
	prog.done(fmt.Sprintf("Rendered %d sheet(s)", len(results)))

	if len(results) == 1 {
		printNewline()
		printNextStep("Print", fmt.Sprintf("%s print %s --paper %s", appName, input, results[0].Selection.Paper.ID))
	}
	return nil
}

// saveSheet writes res to output, or under the export naming in outDir.
func saveSheet(res *pipeline.Result, output, outDir string, clock func() time.Time) (string, error) {
	if output != "" {
		path, err := export.Write(filepath.Dir(output), filepath.Base(output), res.PNG)
		if err != nil {
			return "", fmt.Errorf("write %s: %w", output, err)
		}
		return path, nil
	}
	path, err := export.Save(outDir, res.Selection.Photo, res.Selection.Paper, res.PNG, clock)
	if err != nil {
		return "", fmt.Errorf("export sheet: %w", err)
	}
	return path, nil
}
