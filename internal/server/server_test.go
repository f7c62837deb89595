// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/unixdj/roundcode/coding"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func post(t *testing.T, h http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", path, bytes.NewReader(body)))
	return w
}

func TestEncodeDecode(t *testing.T) {
	h := NewRouter(nil)
	for _, tt := range []struct {
		preset, text, want string
	}{
		{"default", "Hello, World!", "default"},
		{"auto", "12345", "numeric"},
		{"auto", "Hello World", "short"},
		{"uuid", "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", "uuid"},
	} {
		w := get(t, h, "/encode/"+tt.preset+"?size=800&text="+
			url.QueryEscape(tt.text))
		if w.Code != http.StatusOK {
			t.Errorf("encode %q: %d %s", tt.text, w.Code, w.Body)
			continue
		}
		if ct := w.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("encode %q: Content-Type %q", tt.text, ct)
		}
		if p := w.Header().Get("X-Roundcode-Preset"); p != tt.want {
			t.Errorf("encode %q: preset %q, want %q", tt.text, p, tt.want)
		}
		img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
		if err != nil {
			t.Errorf("encode %q: %v", tt.text, err)
			continue
		}
		if n := img.Bounds().Dx(); n != 880 {
			t.Errorf("encode %q: image is %d px", tt.text, n)
		}
		d := post(t, h, "/decode/"+tt.want, w.Body.Bytes())
		if d.Code != http.StatusOK || d.Body.String() != tt.text+"\n" {
			t.Errorf("decode %q: %d %q", tt.text, d.Code, d.Body)
		}
	}
}

func TestUUID(t *testing.T) {
	h := NewRouter(&Config{Size: 800, MaxSize: 800, MaxBytes: 1 << 20})
	w := get(t, h, "/uuid")
	if w.Code != http.StatusOK {
		t.Fatalf("uuid: %d %s", w.Code, w.Body)
	}
	text := w.Header().Get("X-Roundcode-Text")
	if _, err := uuid.Parse(text); err != nil || text != strings.ToUpper(text) {
		t.Errorf("uuid: text %q: %v", text, err)
	}
	d := post(t, h, "/decode/uuid", w.Body.Bytes())
	if d.Body.String() != text+"\n" {
		t.Errorf("decode uuid: %d %q, want %q", d.Code, d.Body, text)
	}
}

func TestErrors(t *testing.T) {
	var logBuf bytes.Buffer
	h := NewRouter(&Config{
		Size: 480, MaxSize: 1000, MaxBytes: 1 << 20,
		Logger: log.New(&logBuf, "", 0),
	})
	for _, tt := range []struct {
		method, path string
		body         []byte
		code         int
	}{
		{"GET", "/encode/nope?text=x", nil, http.StatusNotFound},
		{"GET", "/encode/uuid?text=abc", nil, http.StatusBadRequest},
		{"GET", "/encode/default?text=" + strings.Repeat("x", 40), nil,
			http.StatusBadRequest},
		{"GET", "/encode/auto?text=%E2%82%AC", nil, http.StatusBadRequest},
		{"GET", "/encode/default?text=x&size=10", nil, http.StatusBadRequest},
		{"GET", "/encode/default?text=x&size=2000", nil, http.StatusBadRequest},
		{"POST", "/decode/default", []byte("not an image"),
			http.StatusUnprocessableEntity},
		{"POST", "/decode/nope", nil, http.StatusNotFound},
		{"POST", "/encode/default", nil, http.StatusMethodNotAllowed},
		{"GET", "/decode/default", nil, http.StatusMethodNotAllowed},
	} {
		var w *httptest.ResponseRecorder
		if tt.method == "GET" {
			w = get(t, h, tt.path)
		} else {
			w = post(t, h, tt.path, tt.body)
		}
		if w.Code != tt.code {
			t.Errorf("%s %s: %d, want %d", tt.method, tt.path, w.Code, tt.code)
		}
	}
	if logBuf.Len() == 0 {
		t.Error("errors not logged")
	}

	// A blank image decodes to nothing.
	var blank bytes.Buffer
	img := image.NewGray(image.Rect(0, 0, 500, 500))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	if err := png.Encode(&blank, img); err != nil {
		t.Fatal(err)
	}
	w := post(t, h, "/decode/auto", blank.Bytes())
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("decode blank: %d %s", w.Code, w.Body)
	}
}

func TestStatus(t *testing.T) {
	for _, tt := range []struct {
		err  error
		code int
	}{
		{coding.ErrDecoding, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: x", coding.ErrWrongConfiguration),
			http.StatusUnprocessableEntity},
		{coding.ErrMessageTooLong, http.StatusBadRequest},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	} {
		if c := status(tt.err); c != tt.code {
			t.Errorf("status(%v) = %d, want %d", tt.err, c, tt.code)
		}
	}
}

func TestPresets(t *testing.T) {
	w := get(t, NewRouter(nil), "/presets")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 4 || !strings.HasPrefix(lines[3], "uuid 47 ") {
		t.Errorf("presets: %q", lines)
	}
	if w := get(t, NewRouter(nil), "/health"); w.Body.String() != "OK\n" {
		t.Errorf("health: %q", w.Body)
	}
}
