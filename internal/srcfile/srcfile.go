// seehuhn.de/go/visdiff - visual regression testing for 2D rendering
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

// Package srcfile resolves image sources given on the command line:
// local file paths, http(s) URLs, and data: URIs.
package srcfile

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// httpClient bounds remote fetches; comparing against a hung server
// should fail, not block.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// Open returns the contents of the named source. The name may be a
// local file path, an http:// or https:// URL, or a data: URI with
// base64 or URL-encoded payload.
func Open(name string) ([]byte, error) {
	switch {
	case strings.HasPrefix(name, "data:"):
		return openDataURI(name)
	case strings.HasPrefix(name, "http://"), strings.HasPrefix(name, "https://"):
		return openURL(name)
	default:
		return os.ReadFile(name)
	}
}

func openURL(name string) ([]byte, error) {
	resp, err := httpClient.Get(name)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", name, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// openDataURI decodes "data:[<mediatype>][;base64],<data>".
func openDataURI(name string) ([]byte, error) {
	rest := strings.TrimPrefix(name, "data:")
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("malformed data URI: %w", err)
		}
		return data, nil
	}
	decoded, err := url.QueryUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data URI: %w", err)
	}
	return []byte(decoded), nil
}
