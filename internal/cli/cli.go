// Package cli implements the idphoto command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matzehuels/idphoto/pkg/buildinfo"
	"github.com/matzehuels/idphoto/pkg/cache"
	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/config"
	idperrors "github.com/matzehuels/idphoto/pkg/errors"
	"github.com/matzehuels/idphoto/pkg/pipeline"
	"github.com/matzehuels/idphoto/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "idphoto"

	// Rotation settings for --log-file.
	logMaxSizeMB  = 10
	logMaxBackups = 2
	logMaxAgeDays = 28
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger  *log.Logger
	Config  config.Config
	Catalog *catalog.Catalog

	out     io.Writer
	logFile io.WriteCloser
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		Catalog: catalog.Builtin(),
		out:     w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose     bool
		configPath  string
		catalogPath string
		logFile     string
	)

	root := &cobra.Command{
		Use:   appName,
		Short: "idphoto tiles ID photos onto printable sheets",
		Long: `idphoto packs as many copies of an ID photo as fit onto a sheet of paper,
rotating the sheet when that fits more, and renders the result at 300 DPI
for printing.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			if err := c.setup(configPath, catalogPath, logFile); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.Close()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/idphoto/config.toml)")
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "extra photo/paper catalog (.yaml or .toml)")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file (rotated)")

	root.AddCommand(c.planCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.printCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.watchCommand())

	userFacing(root)
	return root
}

// setup loads configuration layers and prepares logging and the catalog.
func (c *CLI) setup(configPath, catalogPath, logFile string) error {
	config.LoadDotenv()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return err
	}
	if catalogPath != "" {
		cfg.Catalog = catalogPath
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	c.Config = cfg

	if cfg.LogFile != "" {
		c.attachLogFile(cfg.LogFile)
	}
	registerHooks(c.Logger)

	cat, skipped, err := cfg.BuildCatalog(catalog.Builtin())
	if err != nil {
		return err
	}
	for _, s := range skipped {
		c.Logger.Warn("skipping custom spec", "entry", s.String())
	}
	c.Catalog = cat
	return nil
}

// attachLogFile tees log output to a size-rotated file.
func (c *CLI) attachLogFile(path string) {
	lf := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}
	c.logFile = lf
	c.Logger.SetOutput(io.MultiWriter(c.out, lf))
	c.Logger.Debug("logging to file", "path", path)
}

// Close releases the log file, if any.
func (c *CLI) Close() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	c.Logger.SetOutput(c.out)
	return err
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	var sc cache.Cache = cache.NewMemoryCache(0)
	if noCache {
		sc = cache.NewNullCache()
	}
	return pipeline.NewRunner(c.Catalog, sc, nil, c.Logger)
}

// =============================================================================
// Options Helpers
// =============================================================================

// optionFlags are the rendering flags shared by render, print, pick and watch.
type optionFlags struct {
	opts    pipeline.Options
	noCache bool
}

func (f *optionFlags) register(cmd *cobra.Command, withPaper bool) {
	fl := cmd.Flags()
	fl.StringVarP(&f.opts.Photo, "photo", "p", "", "photo size id (default from config, else "+pipeline.DefaultPhoto+")")
	if withPaper {
		fl.StringVar(&f.opts.Paper, "paper", "", "paper size id (default from config, else "+pipeline.DefaultPaper+")")
	}
	fl.StringVar(&f.opts.Orientation, "orientation", "", "paper orientation: auto (default), portrait, landscape")
	fl.StringVarP(&f.opts.Background, "background", "b", "", "sheet background: "+strings.Join(render.BackgroundPresets, ", ")+
		", #rrggbb[aa], rgb(r,g,b), rgba(r,g,b,a), transparent or a CSS colour name (default white)")
	fl.Float64Var(&f.opts.Scale, "scale", 0, fmt.Sprintf("render scale relative to plan pixels (default %.4g, i.e. 300 DPI)", pipeline.DefaultScale))
	fl.StringVar(&f.opts.Crop, "crop", "", "crop mode: center (default), smart")
	fl.BoolVar(&f.opts.Refresh, "refresh", false, "ignore cached sheets")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// options merges the configured defaults under the explicitly set flags.
func (c *CLI) options(flags pipeline.Options) pipeline.Options {
	opts := c.Config.Options()
	if flags.Photo != "" {
		opts.Photo = flags.Photo
	}
	if flags.Paper != "" {
		opts.Paper = flags.Paper
	}
	if flags.Orientation != "" {
		opts.Orientation = flags.Orientation
	}
	if flags.Background != "" {
		opts.Background = flags.Background
	}
	if flags.Scale != 0 {
		opts.Scale = flags.Scale
	}
	if flags.Crop != "" {
		opts.Crop = flags.Crop
	}
	opts.Refresh = flags.Refresh
	opts.Logger = c.Logger
	return opts
}

// outDir returns the export directory: the flag, then config, then ".".
func (c *CLI) outDir(flag string) string {
	switch {
	case flag != "":
		return flag
	case c.Config.OutDir != "":
		return c.Config.OutDir
	}
	return "."
}

// splitList parses a comma-separated flag value.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =============================================================================
// Errors
// =============================================================================

// userError presents structured errors without their machine-readable code.
type userError struct{ err error }

func (e userError) Error() string { return idperrors.UserMessage(e.err) }
func (e userError) Unwrap() error { return e.err }

// userFacing wraps the RunE of cmd and all its descendants so that returned
// errors print as user messages.
func userFacing(cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			var ue userError
			if err == nil || errors.As(err, &ue) {
				return err
			}
			return userError{err}
		}
	}
	for _, sub := range cmd.Commands() {
		userFacing(sub)
	}
}
