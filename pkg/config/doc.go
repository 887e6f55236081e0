// Package config defines the file and environment configuration for
// provider discovery: which providers run and in what order, the API
// addresses they try, permissions requested from injected handles, the
// embedded node settings, debug mode and timeouts. It also provides
// validation, defaulting and a viper-based loader.
package config
