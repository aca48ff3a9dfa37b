/*
Copyright 2024 Stefan Prodan

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/go-logr/logr"

	"github.com/stefanprodan/reclaimer/internal/logger"
)

func loggerSweep(ctx context.Context, namespace, registry string, prettify bool) logr.Logger {
	if !prettify {
		return LoggerFrom(ctx, "namespace", namespace, "registry", registry)
	}
	return LoggerFrom(ctx, "caller",
		fmt.Sprintf("%s %s %s",
			logger.ColorizeNamespace(namespace),
			color.CyanString(">"),
			logger.ColorizeRegistry(registry)))
}

// LoggerFrom returns a logr.Logger with predefined values from a context.Context.
func LoggerFrom(ctx context.Context, keysAndValues ...interface{}) logr.Logger {
	if cliLogger.IsZero() {
		cliLogger = logger.NewConsoleLogger(false, false)
	}
	newLogger := cliLogger
	if ctx != nil {
		if l, err := logr.FromContext(ctx); err == nil {
			newLogger = l
		}
	}
	return newLogger.WithValues(keysAndValues...)
}
