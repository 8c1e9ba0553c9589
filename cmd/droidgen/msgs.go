package droidgen

import (
	"github.com/MakeNowJust/heredoc"
)

// Short messages
const (
	MsgRootShort       = "Android Project Generator following Clean Architecture"
	MsgVersionShort    = "Print version information"
	MsgGenConfigShort  = "Print the configuration as TOML"
	MsgCompletionShort = "Generate shell completion script"

	MsgFirebaseQuestion = "Do you want to include Firebase dependencies?"
	MsgNoPromptHint     = "%s Use --firebase to enable."
	MsgGenerating       = "Generating project %s with package %s..."
	MsgSuccess          = "Success! Created %s at %s"
	MsgFirebaseReminder = "Don't forget to add your google-services.json to %s"
	MsgGetStarted       = "To get started:"
	MsgDryRunNotice     = "DRY RUN MODE - No changes were made. %d files would be written:"

	// Flag descriptions
	MsgFlagVerbose               = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun                = "Generate in memory and list the files without writing them"
	MsgFlagFirebase              = "Include Firebase dependencies"
	MsgFlagNoFirebase            = "Skip Firebase dependencies"
	MsgFlagFlavors               = "Comma-separated product flavors"
	MsgFlagFlavorDimension       = "Flavor dimension name"
	MsgFlagDisableRibbonFlavors  = "Comma-separated flavors whose launcher icon gets no ribbon"
	MsgFlagDisableRibbonVariants = "Comma-separated build types combined with --disable-ribbon-flavors"
	MsgFlagTemplates             = "Directory holding a template set to use instead of the built-in one"
)

// Long messages
var (
	MsgRootLong = heredoc.Doc(`
		droidgen creates a new Android project that follows Clean Architecture.

		The project is written to a new directory named after the app in the
		current directory. It uses Gradle with Kotlin build scripts, Jetpack
		Compose, Hilt and a version catalog, and can optionally include
		Firebase. Product flavors get a launcher icon ribbon each.

		Defaults for flavors and the flavor dimension are read from
		$XDG_CONFIG_HOME/droidgen/config.toml (see 'droidgen genconfig') and
		from DROIDGEN_* environment variables.
	`)

	MsgRootExample = heredoc.Doc(`
		  droidgen com.example.notes Notes
		  droidgen com.example.notes Notes --firebase
		  droidgen com.example.notes Notes --no-firebase --flavors dev,prod --flavor-dimension tier
		  droidgen com.example.notes Notes --dry-run
	`)

	MsgGenConfigLong = heredoc.Doc(`
		Print the effective configuration as TOML.

		Save the output to $XDG_CONFIG_HOME/droidgen/config.toml and edit it to
		change the defaults used for new projects.
	`)

	MsgCompletionLong = heredoc.Doc(`
		To load completions:

		Bash:
		  $ source <(droidgen completion bash)

		Zsh:
		  $ droidgen completion zsh > "${fpath[1]}/_droidgen"

		Fish:
		  $ droidgen completion fish | source

		PowerShell:
		  PS> droidgen completion powershell | Out-String | Invoke-Expression
	`)
)
