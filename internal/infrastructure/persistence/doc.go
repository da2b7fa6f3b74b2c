// Package persistence provides the GORM repositories of the trading floor.
// Both SQLite and PostgreSQL are supported; entities are converted to and from
// the models package at the repository boundary.
package persistence
