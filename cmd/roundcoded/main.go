// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Roundcoded serves round code encoding and decoding over HTTP.
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pborman/getopt/v2"

	"github.com/unixdj/roundcode/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("roundcoded: ")
	c := server.DefaultConfig
	addr := getopt.StringLong("listen", 'l', ":8080", "listen address", "addr")
	size := getopt.IntLong("size", 's', c.Size, "default code diameter", "px")
	maxSize := getopt.IntLong("max-size", 'M', c.MaxSize,
		"maximum code diameter", "px")
	maxBytes := getopt.Int64Long("max-bytes", 'B', c.MaxBytes,
		"maximum decode request size", "bytes")
	quiet := getopt.BoolLong("quiet", 'q', "do not log request errors")
	help := getopt.BoolLong("help", 'h', "show this help")
	getopt.Parse()
	if *help {
		getopt.PrintUsage(os.Stdout)
		return
	}
	if getopt.NArgs() != 0 || *size < 64 || *maxSize < *size {
		getopt.PrintUsage(os.Stderr)
		os.Exit(2)
	}
	c.Size, c.MaxSize, c.MaxBytes = *size, *maxSize, *maxBytes
	if !*quiet {
		c.Logger = log.Default()
	}
	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.NewRouter(&c),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("listening on %s", *addr)
	log.Fatalln(srv.ListenAndServe())
}
