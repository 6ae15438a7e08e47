// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package urlutil provides URL normalization for display and comparison.
//
// Normalize produces the URL stored and shown to the user; Canonicalize
// produces the key used for duplicate comparison and nothing else. Both
// are total functions: malformed input degrades to a defined fallback
// instead of an error.
package urlutil

import (
	"net/url"
	"regexp"
	"strings"
)

// schemeRE matches a URL scheme prefix: a letter followed by
// letters/digits/+/./- and "://".
var schemeRE = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)

// Normalize trims the input and prepends "https://" when no scheme
// prefix is present. Empty input stays empty.
func Normalize(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if !schemeRE.MatchString(u) {
		u = "https://" + u
	}
	return u
}

// Canonicalize maps a URL to its comparison key:
// lower-cased scheme and host, default port stripped, path defaulted to
// "/" and stripped of a trailing slash when longer than one character,
// fragment dropped, query kept verbatim. When parsing fails the key
// falls back to the trimmed, lower-cased raw input; Canonicalize never
// fails.
func Canonicalize(raw string) string {
	u := Normalize(raw)
	if u == "" {
		return ""
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(u))
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme == "" {
		scheme = "https"
	}
	host := strings.ToLower(parsed.Host)
	if scheme == "http" {
		host = strings.TrimSuffix(host, ":80")
	}
	if scheme == "https" {
		host = strings.TrimSuffix(host, ":443")
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}

	key := scheme + "://" + host + path
	if parsed.RawQuery != "" {
		key += "?" + parsed.RawQuery
	}
	return key
}

// GuessTitle derives a display title from a URL: its host, or the raw
// input when no host can be extracted.
func GuessTitle(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}
	return parsed.Host
}
