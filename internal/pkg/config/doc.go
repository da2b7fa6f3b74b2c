// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file, optionally overridden by environment variables
// (a local .env file is honoured), validated and then handed to the rest of the application.
package config
