// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ftree/internal/config"
	"github.com/temirov/ftree/internal/filesystem"
	"github.com/temirov/ftree/internal/filetree"
	"github.com/temirov/ftree/internal/output"
	"github.com/temirov/ftree/internal/services/clipboard"
	"github.com/temirov/ftree/internal/types"
	"github.com/temirov/ftree/internal/utils"
)

const (
	pathFlagName        = "path"
	pathFlagShorthand   = "p"
	formatFlagName      = "format"
	concurrencyFlagName = "concurrency"
	copyFlagName        = "copy"
	configFlagName      = "config"
	verboseFlagName     = "verbose"
	versionFlagName     = "version"
	globalFlagName      = "global"
	forceFlagName       = "force"

	versionTemplate      = utils.ApplicationName + " version: %s\n"
	rootUse              = utils.ApplicationName + " [path]"
	rootShortDescription = "display a directory tree"
	rootLongDescription  = `ftree lists a directory recursively and prints it as an indented tree.
Hidden entries (names starting with a dot) are skipped, siblings are sorted by name,
and symbolic links are shown as "name -> target" without being followed.
The last line reports the number of directories and files.`
	rootUsageExample = `  # Render the current directory
  ftree

  # Render a directory as JSON
  ftree --format json ./internal

  # Build large trees with eight workers and copy the result
  ftree -p /usr/share --concurrency 8 --copy`

	initUse              = "init"
	initShortDescription = "write the default configuration file"
	initLongDescription  = `Write the default configuration to config.yaml in the working directory,
or to ~/.ftree/config.yaml with --global.`

	pathFlagDescription        = "directory to render (positional argument takes precedence)"
	formatFlagDescription      = "output format: raw, json or xml"
	concurrencyFlagDescription = "number of subdirectories built in parallel"
	copyFlagDescription        = "also copy the rendered output to the clipboard"
	configFlagDescription      = "configuration file to use instead of the local config.yaml"
	verboseFlagDescription     = "log traversal details to stderr"
	versionFlagDescription     = "display application version"
	globalFlagDescription      = "write the global configuration instead of the local one"
	forceFlagDescription       = "overwrite an existing configuration file"

	invalidFormatMessage         = "invalid format value '%s'"
	invalidConcurrencyMessage    = "invalid concurrency %d: must be at least 1"
	errorLoadConfigurationFormat = "load configuration: %w"
	errorWriteOutputFormat       = "write output: %w"
	configurationWrittenFormat   = "configuration written to %s\n"

	debugSettingsMessage = "resolved settings"
	warnCopyFailed       = "copying output to clipboard failed"
)

// application carries the collaborators shared by all commands.
type application struct {
	logger           *zap.Logger
	level            zap.AtomicLevel
	fileSystem       filesystem.FileSystem
	copier           clipboard.Copier
	workingDirectory string
}

// treeOptions stores the flag values of the root command.
type treeOptions struct {
	path        string
	format      string
	concurrency int
	copyOutput  bool
	configPath  string
	verbose     bool
	showVersion bool
}

// treeSettings are the effective values after flags override configuration.
type treeSettings struct {
	rootPath    string
	format      string
	concurrency int
	copyOutput  bool
	verbose     bool
}

// Execute runs the ftree application. The traversal is canceled on interrupt.
func Execute(logger *zap.Logger, level zap.AtomicLevel) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &application{
		logger:     logger,
		level:      level,
		fileSystem: filesystem.NewOS(),
		copier:     clipboard.NewService(),
	}
	return app.createRootCommand().ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func (app *application) createRootCommand() *cobra.Command {
	var options treeOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			settings, settingsError := app.resolveSettings(command, options, arguments)
			if settingsError != nil {
				return settingsError
			}
			return app.runTree(command, settings)
		},
	}

	flags := rootCommand.Flags()
	flags.StringVarP(&options.path, pathFlagName, pathFlagShorthand, utils.CurrentDirectoryPath, pathFlagDescription)
	flags.StringVar(&options.format, formatFlagName, config.DefaultFormat, formatFlagDescription)
	flags.IntVar(&options.concurrency, concurrencyFlagName, config.DefaultConcurrency, concurrencyFlagDescription)
	flags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flags, &options.copyOutput, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(flags, &options.verbose, verboseFlagName, false, verboseFlagDescription)
	registerBooleanFlag(flags, &options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(app.createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func (app *application) createInitCommand() *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: app.workingDirectory,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, writtenPath)
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// resolveSettings layers explicit flags and the positional path over the loaded configuration.
func (app *application) resolveSettings(command *cobra.Command, options treeOptions, arguments []string) (treeSettings, error) {
	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: app.workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return treeSettings{}, fmt.Errorf(errorLoadConfigurationFormat, loadError)
	}
	treeConfiguration := loaded.Tree

	flags := command.Flags()
	settings := treeSettings{
		rootPath:    treeConfiguration.ResolvedPath(),
		format:      treeConfiguration.ResolvedFormat(),
		concurrency: treeConfiguration.ResolvedConcurrency(),
		copyOutput:  treeConfiguration.Copy != nil && *treeConfiguration.Copy,
		verbose:     treeConfiguration.Verbose != nil && *treeConfiguration.Verbose,
	}
	if flags.Changed(pathFlagName) {
		settings.rootPath = options.path
	}
	if len(arguments) > 0 {
		settings.rootPath = arguments[0]
	}
	if flags.Changed(formatFlagName) {
		settings.format = options.format
	}
	if flags.Changed(concurrencyFlagName) {
		if options.concurrency < 1 {
			return treeSettings{}, fmt.Errorf(invalidConcurrencyMessage, options.concurrency)
		}
		settings.concurrency = options.concurrency
	}
	if flags.Changed(copyFlagName) {
		settings.copyOutput = options.copyOutput
	}
	if flags.Changed(verboseFlagName) {
		settings.verbose = options.verbose
	}

	settings.format = strings.ToLower(settings.format)
	if !types.IsSupportedFormat(settings.format) {
		return treeSettings{}, fmt.Errorf(invalidFormatMessage, settings.format)
	}
	return settings, nil
}

// runTree builds the whole tree before printing anything, so a failed build produces no output.
func (app *application) runTree(command *cobra.Command, settings treeSettings) error {
	if settings.verbose {
		app.level.SetLevel(zap.DebugLevel)
	}
	app.logger.Debug(debugSettingsMessage,
		zap.String(pathFlagName, settings.rootPath),
		zap.String(formatFlagName, settings.format),
		zap.Int(concurrencyFlagName, settings.concurrency),
		zap.Bool(copyFlagName, settings.copyOutput),
	)

	builder := filetree.Builder{
		FileSystem:  app.fileSystem,
		Logger:      app.logger,
		Concurrency: settings.concurrency,
	}
	tree, buildError := builder.Build(command.Context(), settings.rootPath)
	if buildError != nil {
		return buildError
	}

	rendered, renderError := output.Render(settings.format, settings.rootPath, tree)
	if renderError != nil {
		return renderError
	}
	if _, writeError := fmt.Fprint(command.OutOrStdout(), rendered); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, writeError)
	}

	if settings.copyOutput && app.copier != nil {
		if copyError := app.copier.Copy(rendered); copyError != nil {
			app.logger.Warn(warnCopyFailed, zap.Error(copyError))
		}
	}
	return nil
}
