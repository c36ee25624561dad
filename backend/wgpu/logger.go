package wgpu

import (
	"log/slog"

	"github.com/gogpu/stage"
)

func slogger() *slog.Logger { return stage.Logger() }
