// Package server runs the mock backend over HTTP.
//
// [NewServer] builds the standalone server that listens on the configured
// address and stops on SIGTERM, SIGINT or SIGQUIT. [NewEmbedded] binds a
// loopback port for the backend started inside the admin console.
package server
