package wrap

import "log/slog"

// Options configures a wrapped child run.
type Options struct {
	Argv  []string
	Title string
	Body  string
	// Dispatch sends the completion notification; failures are logged,
	// never fatal.
	Dispatch func(title, body string) error
	Logger   *slog.Logger
}
