// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"log/slog"

	"github.com/gogpu/stage"
)

func slogger() *slog.Logger { return stage.Logger() }
