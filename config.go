package taskz

import (
	"github.com/go-logr/logr"
)

// Option is a function that configures an App.
type Option func(*App)

// WithLogr sets the logger for the application. The default discards all
// output.
var WithLogr = func(log logr.Logger) Option {
	return func(a *App) {
		a.log = log
	}
}
