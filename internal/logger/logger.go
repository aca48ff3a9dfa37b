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

package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/fluxcd/pkg/ssa"
	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	gcrLog "github.com/google/go-containerregistry/pkg/logs"
	"github.com/rs/zerolog"
	runtimeLog "sigs.k8s.io/controller-runtime/pkg/log"

	apiv1 "github.com/stefanprodan/reclaimer/api/v1alpha1"
)

// NewConsoleLogger returns a human-friendly Logger.
// Pretty print adds timestamp, log level and colorized output to the logs.
func NewConsoleLogger(colorize, prettify bool) logr.Logger {
	return NewLogger(color.Error, colorize, prettify)
}

// NewLogger returns a console Logger that writes to the given output.
func NewLogger(out io.Writer, colorize, prettify bool) logr.Logger {
	color.NoColor = !colorize
	zconfig := zerolog.ConsoleWriter{Out: out, NoColor: !colorize}
	if !prettify {
		zconfig.PartsExclude = []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
		}
	}

	zlog := zerolog.New(zconfig).With().Timestamp().Logger()

	// Discard the container registry client logger.
	gcrLog.Warn.SetOutput(io.Discard)

	// Create a logr.Logger using zerolog as sink.
	zerologr.VerbosityFieldName = ""
	log := zerologr.New(&zlog)

	// Set controller-runtime logger.
	runtimeLog.SetLogger(log)

	return log
}

var (
	colorDryRun       = color.New(color.FgHiBlack, color.Italic)
	colorError        = color.New(color.FgHiRed)
	colorPhase        = color.New(color.FgRed, color.Bold)
	colorReady        = color.New(color.FgHiGreen)
	colorCallerPrefix = color.New(color.FgHiBlack)
	colorNamespace    = color.New(color.FgHiMagenta)
	colorRegistry     = color.New(color.FgHiMagenta)
	colorPerAction    = map[ssa.Action]*color.Color{
		ssa.DeletedAction: color.New(color.FgRed),
		ssa.SkippedAction: color.New(color.FgHiBlack),
		ssa.UnknownAction: color.New(color.FgYellow, color.Italic),
	}
)

type DryRunType string

const (
	DryRunClient DryRunType = "(dry run)"
)

func ColorizeJoin(values ...any) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(ColorizeAny(v))
	}
	return sb.String()
}

func ColorizeAny(v any) string {
	switch v := v.(type) {
	case apiv1.ResourceRef:
		return ColorizeResource(v)
	case DryRunType:
		return ColorizeDryRun(v)
	case ssa.Action:
		return ColorizeAction(v)
	case *apiv1.SweepError:
		return ColorizeSweepError(v)
	case error:
		return ColorizeError(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func ColorizeSubject(subject string) string {
	return color.CyanString(subject)
}

func ColorizeReady(subject string) string {
	return colorReady.Sprint(subject)
}

func ColorizeInfo(subject string) string {
	return color.GreenString(subject)
}

func ColorizeWarning(subject string) string {
	return color.YellowString(subject)
}

func ColorizeResource(ref apiv1.ResourceRef) string {
	return ColorizeSubject(ref.String())
}

func ColorizeAction(action ssa.Action) string {
	if c, ok := colorPerAction[action]; ok {
		return c.Sprint(action)
	}
	return action.String()
}

func ColorizeDryRun(dryRun DryRunType) string {
	return colorDryRun.Sprint(string(dryRun))
}

func ColorizeError(err error) string {
	return colorError.Sprint(err.Error())
}

// ColorizeSweepError highlights the phase and the failed item of a sweep error.
func ColorizeSweepError(err *apiv1.SweepError) string {
	var sb strings.Builder
	sb.WriteString(colorPhase.Sprint(string(err.Phase)))
	if s := err.Subject(); s != "" {
		sb.WriteByte(' ')
		sb.WriteString(ColorizeSubject(s))
	}
	if err.Err != nil {
		sb.WriteString(" ")
		sb.WriteString(colorError.Sprint(err.Err.Error()))
	}
	return sb.String()
}

func ColorizeNamespace(namespace string) string {
	return colorCallerPrefix.Sprint("n:") + colorNamespace.Sprint(namespace)
}

func ColorizeRegistry(registry string) string {
	return colorCallerPrefix.Sprint("r:") + colorRegistry.Sprint(registry)
}

// StartSpinner starts a spinner with the given message.
func StartSpinner(msg string) interface{ Stop() } {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + msg
	s.Start()
	return s
}
