package compositor

import (
	"log/slog"

	"github.com/gogpu/stage"
)

// slogger returns the logger configured with stage.SetLogger.
func slogger() *slog.Logger { return stage.Logger() }
