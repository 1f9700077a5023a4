// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"strings"

	"github.com/gnames/exiodb/pkg/config"
	"github.com/spf13/viper"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "exiodb_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// Database settings come from EXIODB_DATABASE_* environment variables
// on top of defaults, the database name is always TestDatabaseName.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	v := viper.New()
	v.SetEnvPrefix("EXIODB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := config.New()
	var opts []config.Option
	if s := v.GetString("database.host"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if i := v.GetInt("database.port"); i != 0 {
		opts = append(opts, config.OptDatabasePort(i))
	}
	if s := v.GetString("database.user"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := v.GetString("database.password"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	if s := v.GetString("database.ssl_mode"); s != "" {
		opts = append(opts, config.OptDatabaseSSLMode(s))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))
	cfg.Update(opts)

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
