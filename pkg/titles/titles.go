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

// Package titles resolves page titles for bookmark URLs.
//
// Resolve fetches the page and extracts its <title>. It is a
// best-effort collaborator: network failures, bad markup, and unknown
// encodings all degrade to a host-derived title, never an error. It
// performs its own network I/O with its own timeout and must be called
// outside any store critical section.
package titles

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/cloudygreybeard/startpage/pkg/urlutil"
)

// maxBody bounds how much of a page is read looking for the title.
const maxBody = 64 * 1024

const defaultUserAgent = "Mozilla/5.0 (StartPage-TitleFetcher)"

var (
	titleRE      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	charsetRE    = regexp.MustCompile(`(?i)charset=([\w\-]+)`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Resolver fetches page titles over HTTP.
type Resolver struct {
	client    *http.Client
	userAgent string
}

// New creates a resolver with the given per-request timeout.
func New(timeout time.Duration, userAgent string) *Resolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Resolver{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Resolve returns the page title for a URL, or a host-derived guess
// when the page cannot be fetched or carries no usable title. It never
// returns an error.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return urlutil.GuessTitle(rawURL)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return urlutil.GuessTitle(rawURL)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil && len(raw) == 0 {
		return urlutil.GuessTitle(rawURL)
	}

	text := decode(raw, sniffCharset(resp.Header.Get("Content-Type")))
	m := titleRE.FindStringSubmatch(text)
	if m == nil {
		return urlutil.GuessTitle(rawURL)
	}
	title := whitespaceRE.ReplaceAllString(html.UnescapeString(m[1]), " ")
	title = strings.TrimSpace(title)
	if title == "" {
		return urlutil.GuessTitle(rawURL)
	}
	return title
}

// sniffCharset pulls the charset name out of a Content-Type header.
func sniffCharset(contentType string) string {
	m := charsetRE.FindStringSubmatch(contentType)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// decode tries the sniffed charset, then utf-8, then windows-1252,
// then latin-1, and finally falls back to stripping invalid UTF-8.
func decode(raw []byte, hint string) string {
	for _, name := range []string{hint, "utf-8", "windows-1252", "iso-8859-1"} {
		if name == "" {
			continue
		}
		enc, err := htmlindex.Get(name)
		if err != nil {
			continue
		}
		out, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		return string(out)
	}
	return strings.ToValidUTF8(string(raw), "")
}
