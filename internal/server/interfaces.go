package server

import "context"

// Server is the standalone mock backend. RunServer blocks until a stop
// signal arrives; Shutdown stops it from another goroutine.
type Server interface {
	RunServer()
	Shutdown()
}

// Runner is a server bound to a context, such as [Embedded]. It matches
// the worker contract of the console process.
type Runner interface {
	Run(ctx context.Context) error
	URL() string
}

var _ Runner = (*Embedded)(nil)
