// The cast-dump command writes a readable representation of a cast file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/castformat/castfile/castbin"
)

const usage = `usage: cast-dump [-strict] [-v] [INPUT] [OUTPUT]

Reads a binary cast file from INPUT, and writes to OUTPUT a readable
representation of its nodes and properties.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.

Flags:
`

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

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
	if len(args) >= 1 && args[0] != "-" {
		in, err := os.Open(args[0])
		if err != nil {
			logger.Error("open input", slog.Any("error", err))
			return
		}
		input = in
		defer in.Close()
	}
	if len(args) >= 2 && args[1] != "-" {
		out, err := os.Create(args[1])
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

	warn, err := castbin.Decoder{Strict: *strict, Logger: logger}.Dump(output, input)
	if warn != nil {
		logger.Warn("decode warning", slog.Any("warning", warn))
	}
	if err != nil {
		logger.Error("decode error", slog.Any("error", err))
		return
	}
	fmt.Fprintln(output)
}
