// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package tokens extracts values from a process argument vector. Every match
// is case-sensitive and operates on whole tokens.
package tokens

import (
	"strings"
)

// FindExactToken returns the index of the first token equal to literal
func FindExactToken(tokens []string, literal string) (int, bool) {
	for i, tok := range tokens {
		if tok == literal {
			return i, true
		}
	}
	return -1, false
}

// ValueAfterFlag returns the token following the first token equal to flag.
// It fails when flag is the last token.
func ValueAfterFlag(tokens []string, flag string) (string, bool) {
	i, ok := FindExactToken(tokens, flag)
	if !ok || i+1 >= len(tokens) {
		return "", false
	}
	return tokens[i+1], true
}

// ValueOfAssignment returns value for the first token of the form key=value.
// An empty value is reported as absent.
func ValueOfAssignment(tokens []string, key string) (string, bool) {
	prefix := key + "="
	for _, tok := range tokens {
		if strings.HasPrefix(tok, prefix) {
			if value := tok[len(prefix):]; value != "" {
				return value, true
			}
		}
	}
	return "", false
}

// ValueOfSpaceJoined returns value for the first single token of the form
// "flag value", as passed by launch scripts that quote both together.
func ValueOfSpaceJoined(tokens []string, flag string) (string, bool) {
	prefix := flag + " "
	for _, tok := range tokens {
		if strings.HasPrefix(tok, prefix) {
			if value := tok[len(prefix):]; value != "" {
				return value, true
			}
		}
	}
	return "", false
}

// PathHasSuffix returns the first colon separated entry of classpath ending
// with suffix
func PathHasSuffix(classpath, suffix string) (string, bool) {
	for _, entry := range strings.Split(classpath, ":") {
		if strings.HasSuffix(entry, suffix) {
			return entry, true
		}
	}
	return "", false
}

// ParentDir drops a trailing slash from path, then removes levels trailing
// path segments. Removing more segments than path holds yields "".
func ParentDir(path string, levels int) string {
	path = strings.TrimSuffix(path, "/")
	for i := 0; i < levels; i++ {
		pos := strings.LastIndex(path, "/")
		if pos < 0 {
			return ""
		}
		path = path[:pos]
	}
	return path
}

// LastSegment returns the last path segment of path, ignoring a trailing slash
func LastSegment(path string) string {
	path = strings.TrimSuffix(path, "/")
	return path[strings.LastIndex(path, "/")+1:]
}
