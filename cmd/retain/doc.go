// Command retain classifies document folders against a retention schedule.
//
// Subcommands: scan runs the classification pipeline over a folder, check
// verifies the inference backend, history inspects saved runs, and config
// manages the TOML configuration file.
package main
