// seehuhn.de/go/pdfview - a PDF viewer with highlight overlays
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"seehuhn.de/go/pdfview/config"
)

type envKey struct{}

// localEnv keeps everything the program needs in a single place.
type localEnv struct {
	Cfg *config.Config
	Log *zap.Logger

	start         time.Time
	quiet         bool
	restoreStdLog func()
}

func envFromContext(ctx context.Context) *localEnv {
	if env, ok := ctx.Value(envKey{}).(*localEnv); ok {
		return env
	}
	panic("program environment not found in context")
}

func contextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &localEnv{
		Log:   zap.NewNop(),
		start: time.Now(),
	})
}

func (e *localEnv) uptime() time.Duration {
	return time.Since(e.start)
}

func (e *localEnv) redirectStdLog() {
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *localEnv) restore() error {
	err := e.Log.Sync()
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
	return err
}
