// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package setup builds the seelog logger used by pkg/util/log from the agent
// configuration.
package setup

import (
	"fmt"
	"html"
	"strings"

	"github.com/cihub/seelog"

	"github.com/DataDog/appserver-discovery/pkg/util/log"
)

// LoggerName names the binary in every log line
type LoggerName string

const (
	logFileMaxSize = 10 * 1024 * 1024         // 10MB
	logDateFormat  = "2006-01-02 15:04:05 MST" // see time.Format for format syntax
)

// Params are the logger settings read from the configuration
type Params struct {
	Name      LoggerName
	Level     string
	File      string
	Console   bool
	JSON      bool
	MaxRolls  int
	MaxSizeMB int
}

// BuildConfig renders the seelog XML configuration for p. The file path and
// logger name are escaped as XML attribute values.
func BuildConfig(p Params) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<seelog minlevel="%s">`, strings.ToLower(normalizeLevel(p.Level)))
	b.WriteString(`<outputs formatid="common">`)
	if p.Console {
		b.WriteString(`<console />`)
	}
	if p.File != "" {
		maxSize := logFileMaxSize
		if p.MaxSizeMB > 0 {
			maxSize = p.MaxSizeMB * 1024 * 1024
		}
		maxRolls := p.MaxRolls
		if maxRolls <= 0 {
			maxRolls = 1
		}
		fmt.Fprintf(&b, `<rollingfile type="size" filename="%s" maxsize="%d" maxrolls="%d" />`, html.EscapeString(p.File), maxSize, maxRolls)
	}
	b.WriteString(`</outputs><formats>`)
	if p.JSON {
		fmt.Fprintf(&b, `<format id="common" format="{&quot;agent&quot;:&quot;%s&quot;,&quot;time&quot;:&quot;%%Date(%s)&quot;,&quot;level&quot;:&quot;%%LEVEL&quot;,&quot;file&quot;:&quot;%%RelFile&quot;,&quot;line&quot;:&quot;%%Line&quot;,&quot;msg&quot;:&quot;%%Msg&quot;}%%n"/>`,
			html.EscapeString(strings.ToLower(string(p.Name))), logDateFormat)
	} else {
		fmt.Fprintf(&b, `<format id="common" format="%%Date(%s) | %s | %%LEVEL | (%%RelFile:%%Line) | %%Msg%%n"/>`, logDateFormat, html.EscapeString(string(p.Name)))
	}
	b.WriteString(`</formats></seelog>`)
	return b.String()
}

// SetupLogger builds a seelog logger from p and installs it in pkg/util/log
func SetupLogger(p Params) error {
	if !p.Console && p.File == "" {
		p.Console = true
	}
	l, err := seelog.LoggerFromConfigAsString(BuildConfig(p))
	if err != nil {
		return fmt.Errorf("unable to build logger: %w", err)
	}
	log.SetupLogger(l, normalizeLevel(p.Level))
	return nil
}

func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "warning":
		return "warn"
	case "err":
		return "error"
	case "":
		return "info"
	}
	return level
}
