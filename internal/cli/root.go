// Package cli implements the promjum command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"promjum/internal/config"
	"promjum/internal/database"
	"promjum/internal/logging"
)

type app struct {
	v       *viper.Viper
	cfg     *config.Config
	db      *database.DB
	learner string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "promjum",
		Short: "Vocabulary word-scramble trainer",
		Long: `promjum manages the vocabulary store behind the word-scramble game
and lets you play sessions in the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromViper(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logging.SetupWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogPretty)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.String("db-type", "", "database type (sqlite, postgres, mysql)")
	flags.String("db-path", "", "sqlite database file")
	flags.String("db-url", "", "postgres or mysql connection URL")
	flags.String("log-level", "", "log level")
	flags.StringVarP(&a.learner, "learner", "l", "local", "learner id for progress")
	for key, name := range map[string]string{
		"db_type":   "db-type",
		"db_path":   "db-path",
		"db_url":    "db-url",
		"log_level": "log-level",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newMigrateCmd(a),
		newWordsCmd(a),
		newDueCmd(a),
		newPlayCmd(a),
	)
	return root
}

// Execute runs the command line.
func Execute(ctx context.Context) error {
	if err := config.LoadDotEnv(""); err != nil {
		return err
	}
	return NewRootCmd().ExecuteContext(ctx)
}

// open connects to the configured database and brings the schema up to date.
func (a *app) open(ctx context.Context) (*database.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.Open(ctx, database.Config{Type: a.cfg.DBType, Path: a.cfg.DBPath, URL: a.cfg.DBURL})
	if err != nil {
		return nil, err
	}
	if _, err := db.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	a.db = db
	return db, nil
}
