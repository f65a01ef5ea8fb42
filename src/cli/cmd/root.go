package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daemonless/depgraph/src/config"
	"github.com/daemonless/depgraph/src/logger"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	log     = zap.NewNop()

	rootDir     string
	outputFile  string
	trackedOnly bool
	baseVersion string
)

var rootCmd = &cobra.Command{
	Use:   "depgraph",
	Short: "Generate the daemonless image dependency graph",
	Long: `Scan every image directory under the root, read the FROM, ARG PACKAGES and
io.daemonless.* labels from its Containerfile, and write dependencies.json
describing base images, derived images and their upstream sources.`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it.
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		log, err = logger.New(logger.ForVerbosity(verbose))
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		applyFlags(cmd, &cfg.Graph)
		log.Debug("configuration loaded",
			zap.String("root", cfg.Graph.Root),
			zap.String("output", cfg.Graph.OutputPath()),
			zap.String("base_version", cfg.Graph.BaseVersion),
			zap.Bool("tracked_only", cfg.Graph.TrackedOnly),
		)
		return nil
	},
	RunE:          runGenerate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file, YAML or .toml (default: .depgraph.yml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&rootDir, "root", "", "directory holding one subdirectory per image (default: from config, then .)")
	pf.StringVarP(&outputFile, "output", "o", "", "output file; relative paths resolve against --root")
	pf.BoolVar(&trackedOnly, "tracked-only", false, "only scan directories committed at git HEAD")
	pf.StringVar(&baseVersion, "base-version", "", `base image version subdirectory, or "latest"`)
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, g *config.GraphConfig) {
	flags := cmd.Flags()
	if flags.Changed("root") {
		g.Root = rootDir
	}
	if flags.Changed("output") {
		g.Output = outputFile
	}
	if flags.Changed("tracked-only") {
		g.TrackedOnly = trackedOnly
	}
	if flags.Changed("base-version") {
		g.BaseVersion = baseVersion
	}
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// log is replaced in PersistentPreRunE; flush whichever one ran, on every path
	defer func() { _ = log.Sync() }()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
