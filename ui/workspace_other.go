//go:build !windows

package ui

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/config"
	"github.com/NaveLIL/erez-mdi/logger"
)

// Workspace is unavailable outside Windows. Run fails immediately and the
// other methods only log.
type Workspace struct {
	log   *logrus.Entry
	ready chan struct{}
	done  chan struct{}
}

// NewWorkspace creates a placeholder workspace.
func NewWorkspace(cfg *config.Config, history chrome.Recorder) *Workspace {
	return &Workspace{
		log:   logger.Get().Component("workspace"),
		ready: make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Ready is never closed.
func (w *Workspace) Ready() <-chan struct{} {
	return w.ready
}

// Done is closed when Run returns.
func (w *Workspace) Done() <-chan struct{} {
	return w.done
}

// Run returns ErrUnsupported.
func (w *Workspace) Run(ctx context.Context) error {
	close(w.done)
	return ErrUnsupported
}

// Do logs and drops a.
func (w *Workspace) Do(a Action) {
	w.log.WithField("action", a).Debug("No workspace, action ignored")
}

// SetDarkTheme does nothing.
func (w *Workspace) SetDarkTheme(dark bool) {}
