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

package srcfile

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLocalFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "img.png")
	require.NoError(t, os.WriteFile(fname, []byte("hello"), 0o644))

	data, err := Open(fname)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestOpenHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/img.png" {
			w.Write([]byte("png-bytes"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	data, err := Open(srv.URL + "/img.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	_, err = Open(srv.URL + "/missing.png")
	assert.Error(t, err)
}

func TestOpenDataURI(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	data, err := Open(uri)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	// URL-encoded payload without base64 marker
	data, err = Open("data:text/plain,hello%20world")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), data)

	_, err = Open("data:nocomma")
	assert.Error(t, err)

	_, err = Open("data:;base64,!!!")
	assert.Error(t, err)
}
