/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/exiodb/internal/iofs"
	"github.com/gnames/exiodb/internal/iologger"
	app "github.com/gnames/exiodb/pkg"
	"github.com/gnames/exiodb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "exiodb",
		Short:   "Loads EXIOBASE satellite accounts into PostgreSQL",
		Long: `exiodb downloads EXIOBASE releases, reshapes consumption-based
(D_cba) and production-based (D_pba) satellite accounts into per-region
PostgreSQL tables and serves them through a small read-only HTTP API.

Commands:
  - create:   create reference tables
  - populate: download, reshape and load the configured years
  - update:   overwrite values of a table by year
  - serve:    run the query service

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (EXIODB_*)
  3. Config file (~/.config/exiodb/config.yaml)
  4. Built-in defaults

Examples of environment variables:
  EXIODB_DATABASE_HOST       PostgreSQL host
  EXIODB_DATABASE_PASSWORD   PostgreSQL password
  EXIODB_SOURCE_SYSTEM       EXIOBASE system (ixi or pxp)
  EXIODB_LOG_LEVEL           Log level (debug/info/warn/error)`,
		PersistentPreRunE:  bootstrap,
		PersistentPostRunE: closeLog,
		RunE:               runRoot,
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	// Remove the automatic "exiodb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for exiodb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getPopulateCmd(),
		getUpdateCmd(),
		getServeCmd(),
	)
	return rootCmd
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
	defaultLog := config.New().Log
	if logCloser, err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
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

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"command", cmd.Name(),
		"config_file", config.ConfigFilePath(homeDir),
	)
	return nil
}

// reconfigureLogging reinitializes the logger with the loaded
// configuration, appending to the log file started by bootstrap.
func reconfigureLogging(cfg *config.Config) error {
	_ = logCloser.Close()

	var err error
	logCloser, err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true)
	return err
}

func closeLog(_ *cobra.Command, _ []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
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
	// Environment variables are bound explicitly, so the list of allowed
	// variables matches the fields of config.ToOptions().
	v.SetEnvPrefix("EXIODB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "EXIODB_DATABASE_HOST")
	v.BindEnv("database.port", "EXIODB_DATABASE_PORT")
	v.BindEnv("database.user", "EXIODB_DATABASE_USER")
	v.BindEnv("database.password", "EXIODB_DATABASE_PASSWORD")
	v.BindEnv("database.database", "EXIODB_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "EXIODB_DATABASE_SSL_MODE")

	// Source configuration
	v.BindEnv("source.doi_url", "EXIODB_SOURCE_DOI_URL")
	v.BindEnv("source.archive_url", "EXIODB_SOURCE_ARCHIVE_URL")
	v.BindEnv("source.system", "EXIODB_SOURCE_SYSTEM")
	v.BindEnv("source.max_version_checks", "EXIODB_SOURCE_MAX_VERSION_CHECKS")
	v.BindEnv("source.retries", "EXIODB_SOURCE_RETRIES")

	// Server configuration
	v.BindEnv("server.port", "EXIODB_SERVER_PORT")

	// Log configuration
	v.BindEnv("log.level", "EXIODB_LOG_LEVEL")
	v.BindEnv("log.format", "EXIODB_LOG_FORMAT")
	v.BindEnv("log.destination", "EXIODB_LOG_DESTINATION")

	v.AutomaticEnv()
}
