// Package iotesting provides shared test utilities for integration
// tests. This is an internal package for test infrastructure only.
package iotesting

import (
	"os"

	"github.com/leafdex/leafdex/pkg/config"
)

// TestDatabaseName is the database name used for all integration
// tests. This ensures tests never accidentally run against production
// databases.
const TestDatabaseName = "leafdex_test"

// GetTestConfig returns a configuration suitable for integration
// tests: defaults with the database name forced to TestDatabaseName.
// LEAFDEX_TEST_DB overrides the name for CI environments.
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
	cfg := config.New()

	cfg.Database.Database = TestDatabaseName
	if db := os.Getenv("LEAFDEX_TEST_DB"); db != "" {
		cfg.Database.Database = db
	}

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for
// tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
