package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/idphoto/pkg/errors"
	"github.com/matzehuels/idphoto/pkg/printing"
	"github.com/matzehuels/idphoto/pkg/render"
)

// printOpts holds the print-specific flags.
type printOpts struct {
	page      string // HTML page path
	outDir    string
	send      bool
	printer   string
	copies    int
	autoPrint bool
}

// printCommand creates the print command, which prepares a sheet for printing.
func (c *CLI) printCommand() *cobra.Command {
	var (
		flags optionFlags
		po    printOpts
	)

	cmd := &cobra.Command{
		Use:   "print <photo>",
		Short: "Render a sheet and prepare it for printing",
		Long: `Render a sheet, save it, and write an HTML page sized exactly to the paper
that prints the sheet edge to edge from any browser.

With --send the sheet is handed straight to the system print spooler (lp or
lpr) with the paper size and orientation set.`,
		Example: `  idphoto print me.jpg --paper 6inch
  idphoto print me.jpg --paper a4 --send --printer office --copies 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if po.copies < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--copies must be at least 1")
			}
			if po.printer == "" {
				po.printer = c.Config.Printer
			}
			return c.runPrint(cmd.Context(), args[0], flags, po)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&po.page, "output", "o", "", "HTML print page (default: next to the exported sheet)")
	cmd.Flags().StringVar(&po.outDir, "out-dir", "", "directory for the exported sheet (default from config, else .)")
	cmd.Flags().BoolVar(&po.send, "send", false, "send the sheet to the print spooler")
	cmd.Flags().StringVar(&po.printer, "printer", "", "spooler destination (default from config, else the system default)")
	cmd.Flags().IntVar(&po.copies, "copies", 1, "number of copies (with --send)")
	cmd.Flags().BoolVar(&po.autoPrint, "auto-print", false, "open the print dialog when the page loads")

	return cmd
}

func (c *CLI) runPrint(ctx context.Context, input string, flags optionFlags, po printOpts) error {
	runner := c.newRunner(flags.noCache)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	spinner.Start()
	res, err := runner.Execute(ctx, render.FileSource{Path: input}, c.options(flags.opts))
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	sheetPath, err := saveSheet(res, "", c.outDir(po.outDir), time.Now)
	if err != nil {
		return err
	}

	page := printing.PageFor(res.Plan, res.Selection.Paper.Size)
	pagePath := po.page
	if pagePath == "" {
		pagePath = strings.TrimSuffix(sheetPath, filepath.Ext(sheetPath)) + ".html"
	}
	if err := writePage(pagePath, page, res.PNG, res.Selection.Photo.Label, po.autoPrint); err != nil {
		return err
	}

	printSuccess("Ready to print %s", StyleDim.Render(page.String()))
	printFile(sheetPath)
	printFile(pagePath)
	printStats(res.Stats.Tiles, "", res.Stats.Bytes, res.CacheInfo.SheetHit)

	if !po.send {
		printNewline()
		printNextStep("Open in a browser and print", pagePath)
		return nil
	}

	spooler, out, err := printing.Spool(ctx, printing.Job{
		Page:    page,
		Path:    sheetPath,
		Printer: po.printer,
		Copies:  po.copies,
	})
	if err != nil {
		return fmt.Errorf("send to printer: %w", err)
	}
	printSuccess("Sent to %s", StyleHighlight.Render(spooler))
	if out != "" {
		printDetail("%s", out)
	}
	return nil
}

func writePage(path string, page printing.Page, png []byte, title string, autoPrint bool) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	var opts []printing.PageOption
	if autoPrint {
		opts = append(opts, printing.WithAutoPrint())
	}
	if err := printing.WritePage(f, page, png, title, opts...); err != nil {
		f.Close()
		return fmt.Errorf("write print page: %w", err)
	}
	return f.Close()
}
