package droidgen

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/droidgen/internal/version"
	"github.com/arthur-debert/droidgen/pkg/cobrax/topics"
	"github.com/arthur-debert/droidgen/pkg/config"
	"github.com/arthur-debert/droidgen/pkg/filesystem"
	"github.com/arthur-debert/droidgen/pkg/logging"
	"github.com/arthur-debert/droidgen/pkg/project"
	"github.com/arthur-debert/droidgen/pkg/prompt"
	"github.com/arthur-debert/droidgen/pkg/templates"
	"github.com/arthur-debert/droidgen/pkg/ui"
)

//go:embed topics
var topicFiles embed.FS

// options holds the flag values of one invocation
type options struct {
	verbosity             int
	dryRun                bool
	firebase              bool
	noFirebase            bool
	flavors               string
	flavorDimension       string
	disableRibbonFlavors  string
	disableRibbonVariants string
	templatesDir          string
}

// environment is what the root command needs from the process
type environment struct {
	getwd func() (string, error)
	// confirmer picks the Firebase prompt. nil selects a Console when stdin
	// is a terminal and a Fixed "no" otherwise.
	confirmer func(cmd *cobra.Command, printer *ui.Printer) prompt.Confirmer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(environment{getwd: os.Getwd})
}

func newRootCmd(env environment) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "droidgen <packageName> <appName>",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ExactArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, env, opts, args[0], args[1])
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.BoolVar(&opts.firebase, "firebase", false, MsgFlagFirebase)
	flags.BoolVar(&opts.noFirebase, "no-firebase", false, MsgFlagNoFirebase)
	flags.StringVar(&opts.flavors, "flavors", "", MsgFlagFlavors)
	flags.StringVar(&opts.flavorDimension, "flavor-dimension", "", MsgFlagFlavorDimension)
	flags.StringVar(&opts.disableRibbonFlavors, "disable-ribbon-flavors", "", MsgFlagDisableRibbonFlavors)
	flags.StringVar(&opts.disableRibbonVariants, "disable-ribbon-variants", "", MsgFlagDisableRibbonVariants)
	flags.StringVar(&opts.templatesDir, "templates", "", MsgFlagTemplates)
	rootCmd.MarkFlagsMutuallyExclusive("firebase", "no-firebase")
	_ = rootCmd.MarkFlagDirname("templates")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	source, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		_, err = topics.InitializeWithOptions(rootCmd, source, topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// overrides maps the flags the user set to configuration keys
func (o *options) overrides(cmd *cobra.Command) map[string]interface{} {
	out := map[string]interface{}{}
	flags := cmd.Flags()
	// empty values keep the configured defaults
	if flags.Changed("flavors") && strings.TrimSpace(o.flavors) != "" {
		out["generate.flavors"] = project.ParseList(o.flavors)
	}
	if flags.Changed("flavor-dimension") && strings.TrimSpace(o.flavorDimension) != "" {
		out["generate.flavor_dimension"] = strings.TrimSpace(o.flavorDimension)
	}
	if flags.Changed("disable-ribbon-flavors") {
		out["generate.disable_ribbon_flavors"] = project.ParseList(o.disableRibbonFlavors)
	}
	if flags.Changed("disable-ribbon-variants") {
		out["generate.disable_ribbon_variants"] = project.ParseList(o.disableRibbonVariants)
	}
	if flags.Changed("templates") {
		out["generate.templates_dir"] = o.templatesDir
	}
	return out
}

func runGenerate(cmd *cobra.Command, env environment, opts *options, packageName, appName string) error {
	logger := logging.GetLogger("cmd.generate")
	printer := ui.NewPrinter(cmd.OutOrStdout())

	if err := project.ValidatePackageName(packageName); err != nil {
		return err
	}

	cfg, err := config.Load(opts.overrides(cmd))
	if err != nil {
		return err
	}

	useFirebase, err := resolveFirebase(cmd, env, opts, printer)
	if err != nil {
		return err
	}

	set, err := templates.Open(cfg.Generate.TemplatesDir)
	if err != nil {
		return err
	}

	cwd, err := env.getwd()
	if err != nil {
		return err
	}

	dst := filesystem.NewOS()
	if opts.dryRun {
		dst = filesystem.NewDryRun()
	}

	vars := project.Variables{
		PackageName:           packageName,
		AppName:               appName,
		UseFirebase:           useFirebase,
		Flavors:               cfg.Generate.Flavors,
		FlavorDimension:       cfg.Generate.FlavorDimension,
		DisableRibbonFlavors:  cfg.Generate.DisableRibbonFlavors,
		DisableRibbonVariants: cfg.Generate.DisableRibbonVariants,
	}
	logger.Info().
		Str("package", packageName).
		Str("app", appName).
		Bool("firebase", useFirebase).
		Strs("flavors", vars.Flavors).
		Bool("dryRun", opts.dryRun).
		Msg("Starting generation")

	if err := vars.Validate(); err != nil {
		return err
	}
	if err := project.CheckDestination(dst, cwd, appName); err != nil {
		return err
	}
	printer.Info(MsgGenerating, appName, packageName)

	result, err := project.Generate(project.Options{
		Parent:    cwd,
		Vars:      vars,
		Templates: set,
		FS:        dst,
		Config:    cfg,
	})
	if err != nil {
		return err
	}

	printSummary(printer, cwd, appName, useFirebase, opts.dryRun, result)
	return nil
}

// resolveFirebase takes the answer from the flags, or asks
func resolveFirebase(cmd *cobra.Command, env environment, opts *options, printer *ui.Printer) (bool, error) {
	switch {
	case opts.firebase:
		return true, nil
	case opts.noFirebase:
		return false, nil
	}

	var confirmer prompt.Confirmer
	if env.confirmer != nil {
		confirmer = env.confirmer(cmd, printer)
	} else {
		confirmer = defaultConfirmer(cmd, printer)
	}
	return confirmer.Confirm(MsgFirebaseQuestion, false)
}

func defaultConfirmer(cmd *cobra.Command, printer *ui.Printer) prompt.Confirmer {
	if ui.IsInteractive(cmd.InOrStdin()) {
		return prompt.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return prompt.Fixed{
		Value: false,
		Warn:  func(msg string) { printer.Warn(MsgNoPromptHint, msg) },
	}
}

func printSummary(printer *ui.Printer, cwd, appName string, useFirebase, dryRun bool, result *project.Result) {
	if dryRun {
		printer.Blank()
		printer.Info(MsgDryRunNotice, len(result.Files))
		for _, f := range result.Files {
			if rel, err := filepath.Rel(cwd, f); err == nil {
				f = rel
			}
			printer.File(f)
		}
		return
	}

	printer.Blank()
	printer.Success(MsgSuccess, appName, result.ProjectDir)
	if useFirebase {
		printer.Blank()
		printer.Warn(MsgFirebaseReminder, result.AppDir)
	}
	printer.Blank()
	printer.Hint(MsgGetStarted)
	printer.Command("cd " + appName)
	printer.Command("./gradlew assembleDebug")
}
