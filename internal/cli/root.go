package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/JeanCesca/app-Todoey/internal/config"
	"github.com/JeanCesca/app-Todoey/internal/model"
	"github.com/JeanCesca/app-Todoey/internal/store"
	"github.com/JeanCesca/app-Todoey/internal/todo"
)

// RootOptions holds global flags and the state resolved from them.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Config is resolved in PersistentPreRunE.
	Config *config.Config

	// Logger is built from the config unless set beforehand.
	Logger *zap.Logger

	// IDs overrides identity generation. Nil means UUIDv7.
	IDs model.IDGenerator

	v *viper.Viper
}

// NewRootCommand creates the root command for the todoey CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts.
// Tests use it to inject a logger and predictable identities.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	opts.v = config.New()

	cmd := &cobra.Command{
		Use:   "todoey",
		Short: "Todoey - categorized to-do lists",
		Long: `Keep to-do items grouped in named categories, stored in a local
SQLite database.

Configuration is read from flags, TODOEY_* environment variables and an
optional YAML file given with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.Logger != nil {
				_ = opts.Logger.Sync()
			}
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.ConfigFile, "config", "", "path to YAML config file")
	flags.String("db", "todoey.db", "path to SQLite database")
	flags.String("scope", "id", "item scope (id|name)")

	_ = opts.v.BindPFlag(config.KeyDB, flags.Lookup("db"))
	_ = opts.v.BindPFlag(config.KeyScope, flags.Lookup("scope"))
	_ = opts.v.BindPFlag(config.KeyFormat, flags.Lookup("format"))

	// Add subcommands
	cmd.AddCommand(NewCategoryCommand(opts))
	cmd.AddCommand(NewItemCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))

	return cmd
}

// resolve loads the configuration and builds the logger.
func (o *RootOptions) resolve() error {
	cfg, err := config.Load(o.v, o.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	o.Config = cfg
	o.Format = cfg.Format

	if o.Logger == nil {
		logger, err := newLogger(cfg.LogLevel, o.Verbose)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to initialize logger", err)
		}
		o.Logger = logger
	}
	return nil
}

// newLogger builds a JSON logger writing to stderr.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// openStore opens the configured database.
func (o *RootOptions) openStore() (*store.Context, error) {
	pc, err := store.Open(o.Config.DB, store.WithLogger(o.Logger), store.WithIDGenerator(o.IDs))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, o.Config.DB, err)
	}
	return pc, nil
}

func (o *RootOptions) categoryStore(pc *store.Context) *todo.CategoryStore {
	return todo.NewCategoryStore(pc, o.Logger.Named("categories"))
}

func (o *RootOptions) itemStore(pc *store.Context) *todo.ItemStore {
	return todo.NewItemStore(pc,
		todo.WithScope(todo.Scope(o.Config.Scope)),
		todo.WithLogger(o.Logger.Named("items")),
	)
}

// formatter returns an OutputFormatter bound to the command's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
