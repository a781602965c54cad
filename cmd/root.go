package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/leafdex/leafdex/internal/iofs"
	"github.com/leafdex/leafdex/internal/iologger"
	app "github.com/leafdex/leafdex/pkg/leafdex"
	"github.com/leafdex/leafdex/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "leafdex",
	Short:   "Leafdex plant discovery reward engine",
	Long: `Leafdex turns plant discovery and plant care into a game.

Players photograph plants; an external classifier identifies the
species and Leafdex awards XP scaled by how rare the species is in
the player's region. Adopted plants carry recurring care tasks and a
calendar-day caretaking streak.

Subcommands manage the full service lifecycle:
  migrate  create or update the database schema
  seed     import a species catalog from an SQLite file
  serve    run the HTTP API`,
	PersistentPreRunE: bootstrap,
	RunE:              runRoot,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file
	// location
	logDir := config.LogDir(cfg.HomeDir)
	if err = iologger.Init(logDir, cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for leafdex")

	rootCmd.AddCommand(getMigrateCmd())
	rootCmd.AddCommand(getSeedCmd())
	rootCmd.AddCommand(getServeCmd())
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables
	// are allowed. These match the fields included in
	// config.ToOptions() - i.e., persistent configuration that can be
	// stored in config.yaml.
	v.SetEnvPrefix("LEAFDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.database", "DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "DATABASE_BATCH_SIZE")

	// Classifier configuration
	v.BindEnv("classifier.url", "CLASSIFIER_URL")
	v.BindEnv("classifier.api_key", "CLASSIFIER_API_KEY")
	v.BindEnv("classifier.model", "CLASSIFIER_MODEL")
	v.BindEnv("classifier.min_confidence", "CLASSIFIER_MIN_CONFIDENCE")
	v.BindEnv("classifier.timeout_sec", "CLASSIFIER_TIMEOUT_SEC")

	// Storage configuration
	v.BindEnv("storage.url", "STORAGE_URL")
	v.BindEnv("storage.private_key", "STORAGE_PRIVATE_KEY")
	v.BindEnv("storage.folder", "STORAGE_FOLDER")
	v.BindEnv("storage.timeout_sec", "STORAGE_TIMEOUT_SEC")

	// Auth configuration
	v.BindEnv("auth.url", "AUTH_URL")
	v.BindEnv("auth.timeout_sec", "AUTH_TIMEOUT_SEC")

	// Game configuration
	v.BindEnv("game.geofence_tolerance", "GAME_GEOFENCE_TOLERANCE")
	v.BindEnv("game.timezone", "GAME_TIMEZONE")
	v.BindEnv("game.tx_timeout_sec", "GAME_TX_TIMEOUT_SEC")
	v.BindEnv("game.screen_threshold", "GAME_SCREEN_THRESHOLD")

	// Server configuration
	v.BindEnv("server.port", "SERVER_PORT")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}
