// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Business code depends on the Config interface so it stays easy to test and
// does not care where values come from. The Viper implementation reads a
// config file, lets GONAV_* environment variables override any key
// (router.timeout becomes GONAV_ROUTER_TIMEOUT), and can also be built from
// an in-memory map for command line overrides and tests.
package pkgconfig
