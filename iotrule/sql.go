package iotrule

import (
	"errors"
	"strings"
)

// ErrEmptySQL is thrown when a rule's SQL statement is empty or blank.
var ErrEmptySQL = errors.New("IoT SQL string cannot be empty")

// SQLConfig is the bound form of a rule's filter configuration: the SQL
// statement selecting messages and the version of the AWS IoT SQL engine
// that should evaluate it.
type SQLConfig struct {
	Sql              string
	AwsIotSqlVersion string
}

// SQL supplies a topic rule's filter configuration. Bind is called once
// during construction.
type SQL interface {
	Bind() (SQLConfig, error)
}

const (
	sqlVersion20151008 = "2015-10-08"
	sqlVersion20160323 = "2016-03-23"
	sqlVersionBeta     = "beta"
)

type versionedSQL struct {
	sql     string
	version string
}

func (v versionedSQL) Bind() (SQLConfig, error) {
	if strings.TrimSpace(v.sql) == "" {
		return SQLConfig{}, ErrEmptySQL
	}
	return SQLConfig{Sql: v.sql, AwsIotSqlVersion: v.version}, nil
}

// SQLVersion20151008 evaluates the statement with the original
// (2015-10-08) version of the AWS IoT SQL engine.
func SQLVersion20151008(sql string) SQL {
	return versionedSQL{sql: sql, version: sqlVersion20151008}
}

// SQLVersion20160323 evaluates the statement with the 2016-03-23 version
// of the AWS IoT SQL engine.
func SQLVersion20160323(sql string) SQL {
	return versionedSQL{sql: sql, version: sqlVersion20160323}
}

// SQLBeta evaluates the statement with the most recent beta version of the
// AWS IoT SQL engine. Beta behaviour may change between deployments.
func SQLBeta(sql string) SQL {
	return versionedSQL{sql: sql, version: sqlVersionBeta}
}
