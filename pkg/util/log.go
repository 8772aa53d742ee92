// Copyright 2025-2026 plamb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var glogger *zap.Logger

func init() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	cfg.DisableStacktrace = true
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	glogger = logger
}

func SetLogLevel(level zapcore.Level) {
	glogger = glogger.WithOptions(zap.IncreaseLevel(level))
}

func Debug(msg string, fields ...zap.Field) {
	glogger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	glogger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	glogger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	glogger.Error(msg, fields...)
}
