//go:build integration
// +build integration

package tests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	dbadapter "github.com/iPad7/gantt-4team/internal/adapter/db"
	"github.com/iPad7/gantt-4team/internal/config"
)

// IntegrationSuiteBase runs against MySQL by default. TEST_DB_DRIVER=sqlite3
// runs the same suites on a throwaway SQLite file.
type IntegrationSuiteBase struct {
	suite.Suite

	adminDB *sqlx.DB
	DB      *sqlx.DB
	conf    *config.Config
	tempDir string
}

func (s *IntegrationSuiteBase) SetupSuite() {
	s.conf = &config.Config{
		DbDriver:   envOrDefault("TEST_DB_DRIVER", config.DriverMySQL),
		DbHost:     envOrDefault("MYSQL_HOST", "127.0.0.1"),
		DbPort:     envOrDefault("MYSQL_PORT", "3306"),
		DbUser:     envOrDefault("MYSQL_ROOT_USER", "root"),
		DbPassword: envOrDefault("MYSQL_ROOT_PASSWORD", "root"),
		DbName:     envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "wbs")+"_test"),
		DbParams:   envOrDefault("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
	}

	switch s.conf.DbDriver {
	case config.DriverSQLite:
		dir, err := os.MkdirTemp("", "wbs-integration-")
		s.Require().NoError(err)
		s.tempDir = dir
		s.conf.SqlitePath = filepath.Join(dir, "wbs.db")
	case config.DriverMySQL:
		server := *s.conf
		server.DbName = ""
		adminDB, err := dbadapter.ConnectDB(&server)
		if err != nil {
			s.T().Skipf("skipping integration suite: could not connect to mysql: %v", err)
		}
		s.adminDB = adminDB

		_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", s.conf.DbName))
		s.Require().NoError(err)
	default:
		s.T().Skipf("skipping integration suite: unsupported driver %q", s.conf.DbDriver)
	}

	db, err := dbadapter.ConnectDB(s.conf)
	s.Require().NoError(err)
	s.DB = db
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}

	if s.adminDB != nil {
		if strings.HasSuffix(s.conf.DbName, "_test") {
			_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.conf.DbName))
			s.Require().NoError(err)
		}
		s.Require().NoError(s.adminDB.Close())
	}

	if s.tempDir != "" {
		s.Require().NoError(os.RemoveAll(s.tempDir))
	}
}

// ResetDatabase drops every table, children first, and re-applies the
// embedded schema.
func (s *IntegrationSuiteBase) ResetDatabase() {
	for _, table := range []string{"task_comments", "task_assignees", "tasks", "users"} {
		_, err := s.DB.Exec("DROP TABLE IF EXISTS " + table)
		s.Require().NoError(err)
	}
	s.Require().NoError(dbadapter.Migrate(context.Background(), s.DB))
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
