// The cast-stat command displays stats for a cast file.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/castformat/castfile"
	"github.com/castformat/castfile/castbin"
)

const usage = `usage: cast-stat [-strict] [-v] [INPUT] [OUTPUT]

Reads a binary cast file from INPUT, and writes to OUTPUT statistics for the
file as JSON.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.

Flags:
`

type PropLen struct {
	Kind     string
	Property string
	Type     string
	Length   int
}

func (p PropLen) String() string {
	return fmt.Sprintf("%s.%s:%s(%d)", p.Kind, p.Property, p.Type, p.Length)
}

type PropLenCount map[PropLen]int

func (p PropLenCount) MarshalJSON() ([]byte, error) {
	list := []PropLen{}
	for k := range p {
		list = append(list, k)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Length != list[j].Length {
			return list[i].Length > list[j].Length
		}
		return list[i].String() < list[j].String()
	})
	if len(list) > 20 {
		list = list[:20]
	}
	return json.Marshal(list)
}

type Stats struct {
	// Binary format data.
	Format castbin.DecoderStats

	// BLAKE2b-256 digest of the canonical encoding, in hexadecimal.
	Digest string `json:",omitempty"`

	// Size of the canonical encoding.
	Size int

	// Hashes used by more than one node.
	DuplicateHashes int

	Models     int
	Meshes     int
	Vertices   int
	Faces      int
	Bones      int
	Materials  int
	Animations int
	Curves     int

	LargestProperties PropLenCount `json:",omitempty"`
}

const Okay = 0
const (
	Exit = 1 << iota
	SkipProperties
	SkipChildren
)

func walk(nodes []*castfile.Node, cb func(n *castfile.Node, prop *castfile.Property) int) (ok bool) {
	for _, n := range nodes {
		status := cb(n, nil)
		if status&Exit != 0 {
			return false
		}
		if status&SkipProperties == 0 {
			for _, p := range n.Properties.List() {
				status := cb(n, p)
				if status&Exit != 0 {
					return false
				}
				if status&SkipProperties != 0 {
					break
				}
			}
		}
		if status&SkipChildren == 0 {
			if ok := walk(n.Children, cb); !ok {
				return false
			}
		}
	}
	return true
}

func (s *Stats) Fill(doc *castfile.Document) {
	if doc == nil {
		return
	}

	s.Size = doc.Len()
	s.DuplicateHashes = len(doc.Duplicates())
	if digest, err := castbin.Digest(doc); err == nil {
		s.Digest = hex.EncodeToString(digest[:])
	}

	for _, root := range doc.Roots() {
		for _, model := range root.Models() {
			s.Models++
			for _, mesh := range model.Meshes() {
				s.Meshes++
				s.Vertices += mesh.VertexCount()
				s.Faces += mesh.FaceCount()
			}
			s.Materials += len(model.Materials())
			if skel, ok := model.Skeleton(); ok {
				s.Bones += len(skel.Bones())
			}
		}
		for _, anim := range root.Animations() {
			s.Animations++
			s.Curves += len(anim.Curves())
		}
	}

	s.LargestProperties = PropLenCount{}
	walk(doc.Nodes, func(n *castfile.Node, p *castfile.Property) int {
		if p == nil {
			return Okay
		}
		length := p.Value.Len()
		if v, ok := p.Value.(castfile.ValueString); ok {
			length = len(v)
		}
		s.LargestProperties[PropLen{
			Kind:     n.Identifier.String(),
			Property: p.Name,
			Type:     p.Type().String(),
			Length:   length}]++
		return Okay
	})
}

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

	var stats Stats
	doc, warn, err := castbin.Decoder{
		Strict: *strict,
		Stats:  &stats.Format,
		Logger: logger,
	}.Decode(input)
	if warn != nil {
		logger.Warn("decode warning", slog.Any("warning", warn))
	}
	if err != nil {
		logger.Error("decode error", slog.Any("error", err))
	}

	stats.Fill(doc)

	je := json.NewEncoder(output)
	je.SetEscapeHTML(false)
	je.SetIndent("", "\t")
	if err := je.Encode(stats); err != nil {
		logger.Error("write error", slog.Any("error", err))
	}
}
