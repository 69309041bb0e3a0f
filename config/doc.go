// Package config loads depbatch configuration.
//
// It uses Viper to read a depbatch.yml file found in the working directory,
// ./config or the user configuration directory, then applies overrides from
// DEPBATCH_ environment variables and an optional .env file.
//
// # Usage
//
//	var cfg config.Config
//	err := config.Load(&cfg, config.WithConfigFile(path))
//
// Environment variables use underscore-separated paths, for example
// DEPBATCH_LOG_LEVEL or DEPBATCH_PLAN_PROJECT_FILE.
package config
