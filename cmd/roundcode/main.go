// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Roundcode encodes text as round codes and decodes round codes from
// image files.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"sort"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"

	"github.com/unixdj/roundcode"
	"github.com/unixdj/roundcode/coding"
	"github.com/unixdj/roundcode/detect"
	"github.com/unixdj/roundcode/split"
	"github.com/unixdj/roundcode/transform"
)

var g = struct {
	size    int                   // code diameter
	border  int                   // quiet zone
	rev     bool                  // reverse colours
	fn      string                // filename
	fext    string                // filename suffix
	format  int                   // output file format
	rot     int                   // quarter turns clockwise
	cfg     *coding.Configuration // nil: choose
	charset encoding.Encoding     // standard input encoding
	decode  bool                  // decode mode
	clean   bool                  // clean input
	multi   bool                  // split into several codes
	uuid    bool                  // random UUID
	verbose bool                  // trace
	neg     bool                  // decode light codes on dark
}{}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	fmt.Fprint(w, "Round code generator\nUsage: ", prog, " ",
		cl.UsageLine(), ` [string ...]
       `, prog, ` -d [-nv] [-c preset] file ...
If no string is given, text is read from standard input and the final
newline is stripped.  Without -c, the most compact preset accepting the
text is used: `, strings.Join(names(split.Compact()), ", "), `.
With -d, the named image files are decoded in turn until one succeeds.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	w.Write(b.Bytes())
}

func names(cc []*coding.Configuration) []string {
	s := make([]string, len(cc))
	for i, c := range cc {
		s[i] = c.Name()
	}
	return s
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`roundcode version 0.1.0
Copyright (c) 2025 Vadim Vygonets`)
	os.Exit(0)
}

func rotate() {
	g.rot++
}

var formats = []string{
	"png", "pngi", "pbm", "pbmi", "utf8", "utf8i", "ascii", "asciii",
}

var encoders = [...]func(*roundcode.Code, io.Writer) error{
	(*roundcode.Code).EncodePNG,
	(*roundcode.Code).EncodePBM,
	func(c *roundcode.Code, w io.Writer) error {
		_, err := fmt.Fprint(w, c)
		return err
	},
	func(c *roundcode.Code, w io.Writer) error {
		_, err := io.WriteString(w, c.ASCII())
		return err
	},
}

// charsets are the accepted standard input encodings.
var charsets = map[string]encoding.Encoding{
	"utf-8":        encoding.Nop,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"koi8-r":       charmap.KOI8R,
	"shift_jis":    japanese.ShiftJIS,
	"euc-jp":       japanese.EUCJP,
}

func charsetNames() []string {
	s := make([]string, 0, len(charsets))
	for k := range charsets {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.decode, 'd', "decode image files")
	getopt.Flag(opt(rotate), 'r', `rotate code 90° clockwise; `+
		`may be given multiple times`).SetFlag()
	getopt.Flag(&g.clean, 'i', `normalise input: compose accents, `+
		`fold fullwidth forms, convert to upper case if the preset `+
		`has no lower case letters`)
	getopt.Flag(&g.multi, 'S', `split long text into several codes`)
	getopt.Flag(&g.uuid, 'u', `encode a random UUID`)
	getopt.Flag(&g.verbose, 'v', `print details to standard error`)
	getopt.Flag(&g.neg, 'n', `with -d, decode light codes on a dark `+
		`background, as written by types ending in "i"`)
	getopt.Flag(&g.border, 'm', `quiet zone pixels [size/20]`, "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output; with -S, "-01", "-02" etc. is appended `+
		`to the filename before suffix`, "file")
	preset := getopt.Enum('c', coding.Presets(), "",
		"alphabet preset, one of: "+
			strings.Join(coding.Presets(), ", "), "preset")
	cs := getopt.Enum('e', charsetNames(), "utf-8",
		"standard input encoding, one of: "+
			strings.Join(charsetNames(), ", "), "charset")
	size := getopt.Unsigned('s', roundcode.DefaultSize,
		&getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 64, Max: 1 << 14},
		`code diameter in pixels; ignored for types utf8[i] and ascii[i]`,
		"size")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted `+
			`and are decoded with -d -n; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	if g.decode {
		for _, v := range "rSuimote" {
			if getopt.IsSet(v) {
				fmt.Fprintf(os.Stderr,
					"-d and -%c are incompatible\n", v)
				usage()
			}
		}
	}
	if g.neg && !g.decode {
		fmt.Fprintln(os.Stderr, "-n requires -d")
		usage()
	}
	if g.uuid && g.multi {
		fmt.Fprintln(os.Stderr, "-u and -S are incompatible")
		usage()
	}
	g.charset = charsets[*cs]
	g.size = int(*size)
	if !getopt.IsSet('m') {
		g.border = g.size / 20
	}
	if *preset != "" {
		g.cfg, _ = coding.Preset(*preset)
	}
	if g.uuid {
		g.cfg = coding.UUID()
	}
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.rev = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()

	if g.decode {
		decode(getopt.Args())
		return
	}

	var s string
	if g.uuid {
		s = strings.ToUpper(uuid.New().String())
	} else if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		in := g.charset.NewDecoder().Reader(os.Stdin)
		if _, err := io.Copy(&b, in); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.clean && g.cfg != nil {
		s = split.Clean(s, g.cfg)
	}

	if g.multi {
		cfg := g.cfg
		if cfg == nil {
			cfg, s = chooseAny(s)
		}
		pp, err := split.Split(s, cfg)
		if err != nil {
			log.Fatalln(err)
		}
		g.fext = path.Ext(g.fn)
		g.fn = g.fn[:len(g.fn)-len(g.fext)]
		for i, p := range pp {
			write(i, encode(p, cfg))
		}
		return
	}
	cfg := g.cfg
	if cfg == nil {
		var err error
		if cfg, s, err = split.Choose(s); err != nil {
			log.Fatalln(err)
		}
	}
	write(-1, encode(s, cfg))
}

// chooseAny returns the most compact preset accepting s regardless
// of length, and s cleaned for it.
func chooseAny(s string) (*coding.Configuration, string) {
	for _, c := range split.Compact() {
		if t := split.Clean(s, c); split.Accepts(t, c) {
			return c, t
		}
	}
	log.Fatalln(split.ErrNotEncodable)
	return nil, ""
}

func encode(s string, cfg *coding.Configuration) *roundcode.Code {
	c, err := roundcode.Encode(s, cfg)
	if err != nil {
		log.Fatalln(err)
	}
	if g.verbose {
		log.Printf("%q: preset %v, version %v, %d bit symbols, "+
			"%d of %d runes, %d bits", s, cfg, cfg.Version(),
			cfg.BitsPerSymbol(), len([]rune(s)),
			cfg.MaxMessageLength(), len(c.Instructions))
	}
	return c
}

func write(i int, c *roundcode.Code) {
	fn := g.fn
	open := fn != "" || g.fext != ""
	var w = os.Stdout
	if open {
		if i >= 0 {
			fn = fmt.Sprintf("%s-%02d%s", fn, i+1, g.fext)
		}
		var err error
		if w, err = os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	c = c.Rotate(g.rot)
	c.Size, c.Border, c.Reverse = g.size, g.border, g.rev
	err := encoders[g.format](c, w)
	if open && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func decode(files []string) {
	if len(files) == 0 {
		usage()
	}
	d := roundcode.Decoder{Config: g.cfg}
	if g.neg {
		o := detect.DefaultOptions.Inverted()
		d.Options = &o
	}
	if g.verbose {
		d.Trace = &roundcode.Tracer{
			Points: func(p detect.ControlPoints) {
				log.Printf("control points: %.1f", p)
			},
			Transform: func(h transform.Homography) {
				log.Printf("transform: %.4g", h.M)
			},
			Bits: func(b []coding.Bit) {
				var s strings.Builder
				for _, v := range b {
					s.WriteByte('0' + byte(v))
				}
				log.Printf("bits: %s", s.String())
			},
		}
	}
	cam := roundcode.Files(files)
	s, err := d.Scan(context.Background(), &cam)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(s)
}
