// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server implements the round code HTTP service.
package server

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/unixdj/roundcode"
	"github.com/unixdj/roundcode/coding"
	"github.com/unixdj/roundcode/split"
)

// Auto is the preset name selecting the most compact preset.
const Auto = "auto"

// Config configures the service.
type Config struct {
	Size     int         // default code diameter in pixels
	MaxSize  int         // maximum code diameter
	MaxBytes int64       // maximum decode request body
	Logger   *log.Logger // request errors; nil: discard
}

// DefaultConfig is used by NewRouter when passed nil.
var DefaultConfig = Config{
	Size:     roundcode.DefaultSize,
	MaxSize:  4096,
	MaxBytes: 16 << 20,
}

type server struct {
	Config
}

// NewRouter returns the service routes:
//
//	GET  /health
//	GET  /presets
//	GET  /encode/{preset}?text=...[&size=N]   PNG image
//	GET  /uuid[?size=N]                       PNG image of a random UUID
//	POST /decode/{preset}                     image body, text reply
//
// The preset "auto" picks the most compact preset for encoding and
// the default preset for decoding.
func NewRouter(c *Config) *mux.Router {
	if c == nil {
		c = &DefaultConfig
	}
	s := &server{*c}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard, "", 0)
	}
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/presets", s.presets).Methods("GET")
	r.HandleFunc("/encode/{preset}", s.encode).Methods("GET")
	r.HandleFunc("/uuid", s.uuid).Methods("GET")
	r.HandleFunc("/decode/{preset}", s.decode).Methods("POST")
	return r
}

// status returns the HTTP status for err.
func status(err error) int {
	switch {
	case errors.Is(err, coding.ErrInvalidCharacter),
		errors.Is(err, coding.ErrMessageTooLong),
		errors.Is(err, split.ErrNotEncodable),
		errors.Is(err, split.ErrLongText):
		return http.StatusBadRequest
	case errors.Is(err, coding.ErrDecoding),
		errors.Is(err, coding.ErrWrongConfiguration),
		errors.Is(err, roundcode.ErrWrongImageSize),
		errors.Is(err, image.ErrFormat):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := status(err)
	s.Logger.Printf("%s %s: %d %v", r.Method, r.URL.Path, code, err)
	http.Error(w, err.Error(), code)
}

func (s *server) presets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, n := range coding.Presets() {
		c, _ := coding.Preset(n)
		fmt.Fprintf(w, "%s %d %q\n", n, c.MaxMessageLength(), c.Alphabet())
	}
}

// preset returns the configuration named in the request path.
func preset(r *http.Request) (*coding.Configuration, bool) {
	name := mux.Vars(r)["preset"]
	if name == Auto {
		return nil, true
	}
	return coding.Preset(name)
}

func (s *server) size(r *http.Request) (int, error) {
	v := r.URL.Query().Get("size")
	if v == "" {
		return s.Size, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 64 || n > s.MaxSize {
		return 0, fmt.Errorf("bad size %q", v)
	}
	return n, nil
}

func (s *server) png(w http.ResponseWriter, r *http.Request, text string, cfg *coding.Configuration) {
	size, err := s.size(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if cfg == nil {
		if cfg, text, err = split.Choose(text); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	c, err := roundcode.Encode(text, cfg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	c.Size, c.Border = size, size/20
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Roundcode-Preset", cfg.Name())
	w.Header().Set("X-Roundcode-Text", text)
	if err := c.EncodePNG(w); err != nil {
		s.Logger.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
}

func (s *server) encode(w http.ResponseWriter, r *http.Request) {
	cfg, ok := preset(r)
	if !ok {
		http.Error(w, "unknown preset", http.StatusNotFound)
		return
	}
	s.png(w, r, r.URL.Query().Get("text"), cfg)
}

func (s *server) uuid(w http.ResponseWriter, r *http.Request) {
	s.png(w, r, strings.ToUpper(uuid.NewString()), coding.UUID())
}

func (s *server) decode(w http.ResponseWriter, r *http.Request) {
	cfg, ok := preset(r)
	if !ok {
		http.Error(w, "unknown preset", http.StatusNotFound)
		return
	}
	img, _, err := image.Decode(http.MaxBytesReader(w, r.Body, s.MaxBytes))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d := roundcode.Decoder{Config: cfg}
	text, err := d.Decode(roundcode.Square(img, 0))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, text)
}
