package colorscheme

import (
	"context"
	"time"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/logging"
)

// SelectNotifier checks the environment once and returns the registration
// mechanism to use: file events when a settings directory can be watched,
// polling otherwise. Only one is ever returned.
func SelectNotifier(ctx context.Context, preferEvents bool, pollInterval time.Duration, files ...string) port.ChangeNotifier {
	log := logging.FromContext(ctx)

	if preferEvents && len(files) > 0 {
		fileNotifier := NewFileNotifier(files...)
		if fileNotifier.Watchable() {
			log.Debug().Strs("files", files).Msg("using file events for ambient changes")
			return fileNotifier
		}
	}

	log.Debug().Dur("interval", pollInterval).Msg("using polling for ambient changes")
	return NewPollNotifier(pollInterval)
}

// NewDefaultMonitor builds a monitor with the standard detector chain and a
// notifier chosen by SelectNotifier.
func NewDefaultMonitor(ctx context.Context, preferEvents bool, pollInterval time.Duration) *Monitor {
	gtk := NewGtkSettingsDetector()
	notifier := SelectNotifier(ctx, preferEvents, pollInterval, gtk.Paths()...)
	return NewMonitor(ctx, notifier,
		NewTerminalDetector(),
		gtk,
		NewEnvDetector(),
		NewGsettingsDetector(),
	)
}
