// The cast-convert command converts between the cast binary format and its
// JSON, YAML and CBOR mirrors.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/castformat/castfile"
	"github.com/castformat/castfile/castbin"
	"github.com/castformat/castfile/tree"
)

const usage = `usage: cast-convert [-from FORMAT] [-to FORMAT] [-strict] [-v] [INPUT] [OUTPUT]

Reads a document from INPUT in one format, and writes it to OUTPUT in another.

FORMAT is one of "cast" (binary), "json", "yaml" or "cbor". If a format is
unspecified, then it is inferred from the extension of the corresponding file.
Otherwise, INPUT defaults to cast, and OUTPUT defaults to json.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.

Flags:
`

type format struct {
	decode func(b []byte, d castbin.Decoder) (*castfile.Document, error, error)
	encode func(doc *castfile.Document) ([]byte, error)
}

var formats = map[string]format{
	"cast": {
		decode: func(b []byte, d castbin.Decoder) (*castfile.Document, error, error) {
			doc, warn, err := d.Decode(bytes.NewReader(b))
			return doc, warn, err
		},
		encode: castbin.Save,
	},
	"json": {
		decode: mirror(tree.DecodeJSON),
		encode: tree.EncodeJSON,
	},
	"yaml": {
		decode: mirror(tree.DecodeYAML),
		encode: tree.EncodeYAML,
	},
	"cbor": {
		decode: mirror(tree.DecodeCBOR),
		encode: tree.EncodeCBOR,
	},
}

func mirror(decode func([]byte) (*castfile.Document, error)) func([]byte, castbin.Decoder) (*castfile.Document, error, error) {
	return func(b []byte, _ castbin.Decoder) (*castfile.Document, error, error) {
		doc, err := decode(b)
		return doc, nil, err
	}
}

// formatOf infers a format from the extension of path.
func formatOf(path, def string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cast":
		return "cast"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".cbor":
		return "cbor"
	}
	return def
}

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

	from := flag.String("from", "", "format of INPUT")
	to := flag.String("to", "", "format of OUTPUT")
	strict := flag.Bool("strict", false, "treat warnings as errors")
	verbose := flag.Bool("v", false, "log debug records to stderr")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	args := flag.Args()
	var inPath, outPath string
	if len(args) >= 1 && args[0] != "-" {
		inPath = args[0]
	}
	if len(args) >= 2 && args[1] != "-" {
		outPath = args[1]
	}
	if *from == "" {
		*from = formatOf(inPath, "cast")
	}
	if *to == "" {
		*to = formatOf(outPath, "json")
	}
	dec, ok := formats[*from]
	if !ok {
		logger.Error("unknown input format", slog.String("format", *from))
		return
	}
	enc, ok := formats[*to]
	if !ok {
		logger.Error("unknown output format", slog.String("format", *to))
		return
	}

	if inPath != "" {
		in, err := os.Open(inPath)
		if err != nil {
			logger.Error("open input", slog.Any("error", err))
			return
		}
		input = in
		defer in.Close()
	}

	b, err := io.ReadAll(input)
	if err != nil {
		logger.Error("read input", slog.Any("error", err))
		return
	}
	doc, warn, err := dec.decode(b, castbin.Decoder{Strict: *strict, Logger: logger})
	if warn != nil {
		logger.Warn("decode warning", slog.Any("warning", warn))
	}
	if err != nil {
		logger.Error("decode error", slog.String("format", *from), slog.Any("error", err))
		return
	}
	b, err = enc.encode(doc)
	if err != nil {
		logger.Error("encode error", slog.String("format", *to), slog.Any("error", err))
		return
	}

	if outPath != "" {
		out, err := os.Create(outPath)
		if err != nil {
			logger.Error("create output", slog.Any("error", err))
			return
		}
		defer out.Close()
		defer func() {
			if err := out.Sync(); err != nil {
				logger.Error("sync output", slog.Any("error", err))
			}
		}()
		output = out
	}
	if _, err := output.Write(b); err != nil {
		logger.Error("write output", slog.Any("error", err))
		return
	}
	logger.Debug("converted",
		slog.String("from", *from),
		slog.String("to", *to),
		slog.Int("bytes", len(b)),
	)
}
