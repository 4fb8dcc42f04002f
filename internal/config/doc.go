// Package config loads, merges and validates configuration for the exam
// admin console and its mock backend.
//
// Sources, highest priority first (the first non-zero value wins):
//  1. Environment variables, after a .env file has been loaded into them
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// [GetClientConfig] returns the console view and [GetMockServerConfig] the
// mock backend view.
package config
