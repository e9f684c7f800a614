package castbin

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/castformat/castfile"
	"github.com/castformat/castfile/errors"
)

// Dump writes to w a readable representation of the binary format decoded from
// r. Node lengths are shown as declared by the data.
func (d Decoder) Dump(w io.Writer, r io.Reader) (warn, err error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	if w == nil {
		return nil, errors.New("nil writer")
	}

	dec := newDecoder(d, r)
	dec.lengths = map[*castfile.Node]uint32{}
	doc, err := dec.decode()
	warn = dec.warns.Return()
	if err != nil {
		return warn, err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Version: %d", doc.Version)
	fmt.Fprintf(bw, "\nRoots: %d", len(doc.Nodes))
	fmt.Fprint(bw, "\nNodes: {")
	for i, n := range doc.Nodes {
		dumpNode(bw, 1, i, n, dec.lengths)
	}
	fmt.Fprint(bw, "\n}")

	if err := bw.Flush(); err != nil {
		return warn, err
	}
	return warn, nil
}

func dumpNode(w *bufio.Writer, indent, i int, n *castfile.Node, lengths map[*castfile.Node]uint32) {
	dumpNewline(w, indent)
	fmt.Fprintf(w, "#%d: ", i)
	dumpIdentifier(w, n.Identifier)
	if !castfile.Registered(n.Identifier) {
		w.WriteString(" (unknown)")
	}
	w.WriteString(" {")
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Hash: %016X", n.Hash)
	dumpNewline(w, indent+1)
	if declared, ok := lengths[n]; ok && int(declared) != n.Len() {
		fmt.Fprintf(w, "Length: %d (actual:%d)", declared, n.Len())
	} else {
		fmt.Fprintf(w, "Length: %d", n.Len())
	}

	props := n.Properties.List()
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Properties: (count:%d) {", len(props))
	for _, p := range props {
		dumpNewline(w, indent+2)
		dumpString(w, indent+2, p.Name)
		fmt.Fprintf(w, ": %s (count:%d) ", p.Type(), p.Count())
		dumpValue(w, indent+2, p.Value)
	}
	dumpNewline(w, indent+1)
	w.WriteByte('}')

	if len(n.Children) > 0 {
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Children: (count:%d) {", len(n.Children))
		for j, child := range n.Children {
			dumpNode(w, indent+2, j, child, lengths)
		}
		dumpNewline(w, indent+1)
		w.WriteByte('}')
	}
	dumpNewline(w, indent)
	w.WriteByte('}')
}

// dumpValue writes short values inline, and long values one element per line.
func dumpValue(w *bufio.Writer, indent int, v castfile.Value) {
	if s, ok := v.(castfile.ValueString); ok {
		dumpString(w, indent, string(s))
		return
	}
	const inline = 4
	if v.Len() <= inline {
		w.WriteString(v.String())
		return
	}
	w.WriteByte('{')
	for i := 0; i < v.Len(); i++ {
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "%d: %s", i, elementString(v, i))
	}
	dumpNewline(w, indent)
	w.WriteByte('}')
}

func elementString(v castfile.Value, i int) string {
	switch v := v.(type) {
	case castfile.ValueBytes:
		return strconv.FormatUint(uint64(v[i]), 10)
	case castfile.ValueShorts:
		return strconv.FormatUint(uint64(v[i]), 10)
	case castfile.ValueInts:
		return strconv.FormatUint(uint64(v[i]), 10)
	case castfile.ValueLongs:
		return strconv.FormatUint(v[i], 10)
	case castfile.ValueFloats:
		return strconv.FormatFloat(float64(v[i]), 'g', -1, 32)
	case castfile.ValueDoubles:
		return strconv.FormatFloat(v[i], 'g', -1, 64)
	case castfile.ValueVec2s:
		return v[i].String()
	case castfile.ValueVec3s:
		return v[i].String()
	case castfile.ValueVec4s:
		return v[i].String()
	}
	return ""
}

func dumpNewline(w *bufio.Writer, indent int) {
	w.WriteByte('\n')
	for i := 0; i < indent; i++ {
		w.WriteByte('\t')
	}
}

func dumpIdentifier(w *bufio.Writer, id castfile.Identifier) {
	for _, c := range id.Bytes() {
		if unicode.IsPrint(rune(c)) {
			w.WriteByte(c)
		} else {
			w.WriteByte('.')
		}
	}
	fmt.Fprintf(w, " (% 02X)", id.Bytes())
}

func dumpString(w *bufio.Writer, indent int, s string) {
	for _, r := range s {
		if !unicode.IsGraphic(r) {
			dumpBytes(w, indent, []byte(s))
			return
		}
	}
	w.WriteString(strconv.Quote(s))
}

func dumpBytes(w *bufio.Writer, indent int, b []byte) {
	fmt.Fprintf(w, "(len:%d)", len(b))
	const width = 16
	for j := 0; j < len(b); j += width {
		dumpNewline(w, indent+1)
		w.WriteString("| ")
		for i := j; i < j+width; {
			if i < len(b) {
				fmt.Fprintf(w, "%02x", b[i])
			} else if len(b) < width {
				break
			} else {
				w.WriteString("  ")
			}
			i++
			if i%8 == 0 && i < j+width {
				w.WriteString("  ")
			} else {
				w.WriteString(" ")
			}
		}
		w.WriteString("|")
		n := min(len(b), j+width)
		for i := j; i < n; i++ {
			if 32 <= b[i] && b[i] <= 126 {
				w.WriteByte(b[i])
			} else {
				w.WriteByte('.')
			}
		}
		w.WriteByte('|')
	}
}
