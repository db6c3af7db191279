// Package fmi reads and writes the FMI text graph file format: a header of
// three counts followed by node, sight, and edge lines. See SPEC_FULL.md
// §6.1 for the exact grammar.
package fmi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"wayfarer/internal/category"
)

// Node is a raw, unresolved graph node as read from or written to an FMI file.
type Node struct {
	ID       int
	Lat, Lon float64
}

// Sight is a raw sight row: NodeID indexes into the Node slice read alongside it.
type Sight struct {
	NodeID   int
	Lat, Lon float64
	Category category.Category
}

// Edge is a raw, already-resolved directed edge with an integer distance in meters.
type Edge struct {
	Src, Tgt int
	Dist     int
}

// ParseError distinguishes the three ways FMI decoding can fail, matching the
// error taxonomy in SPEC_FULL.md §7.
type ParseError struct {
	Kind ParseErrorKind
	Line int
	Err  error
}

// ParseErrorKind enumerates the ParseError taxonomy.
type ParseErrorKind int

const (
	KindIO ParseErrorKind = iota
	KindParseInt
	KindParseFloat
)

func (e *ParseError) Error() string {
	var kind string
	switch e.Kind {
	case KindIO:
		kind = "io"
	case KindParseInt:
		kind = "parse-int"
	case KindParseFloat:
		kind = "parse-float"
	default:
		kind = "unknown"
	}
	return fmt.Sprintf("fmi: %s error at line %d: %v", kind, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Data is the full set of rows decoded from an FMI file, in file order.
type Data struct {
	Nodes  []Node
	Sights []Sight
	Edges  []Edge
}

// Decode reads an FMI file from r. Nodes, sights and edges are returned
// exactly as encountered, in file order; no offset building or invariant
// checking happens here — that is the graph store's job.
func Decode(r io.Reader) (*Data, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0

	nextLine := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return sc.Text(), true
	}

	numNodes, err := nextInt(nextLine, &line)
	if err != nil {
		return nil, err
	}
	numSights, err := nextInt(nextLine, &line)
	if err != nil {
		return nil, err
	}
	numEdges, err := nextInt(nextLine, &line)
	if err != nil {
		return nil, err
	}

	data := &Data{
		Nodes:  make([]Node, 0, numNodes),
		Sights: make([]Sight, 0, numSights),
		Edges:  make([]Edge, 0, numEdges),
	}

	for i := 0; i < numNodes; i++ {
		txt, ok := nextLine()
		if !ok {
			return nil, &ParseError{Kind: KindIO, Line: line + 1, Err: io.ErrUnexpectedEOF}
		}
		fields := strings.Fields(txt)
		if len(fields) != 3 {
			return nil, &ParseError{Kind: KindIO, Line: line, Err: fmt.Errorf("node line: want 3 fields, got %d", len(fields))}
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &ParseError{Kind: KindParseInt, Line: line, Err: err}
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &ParseError{Kind: KindParseFloat, Line: line, Err: err}
		}
		lon, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, &ParseError{Kind: KindParseFloat, Line: line, Err: err}
		}
		data.Nodes = append(data.Nodes, Node{ID: id, Lat: lat, Lon: lon})
	}

	for i := 0; i < numSights; i++ {
		txt, ok := nextLine()
		if !ok {
			return nil, &ParseError{Kind: KindIO, Line: line + 1, Err: io.ErrUnexpectedEOF}
		}
		fields := strings.Fields(txt)
		if len(fields) != 4 {
			return nil, &ParseError{Kind: KindIO, Line: line, Err: fmt.Errorf("sight line: want 4 fields, got %d", len(fields))}
		}
		nodeID, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &ParseError{Kind: KindParseInt, Line: line, Err: err}
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &ParseError{Kind: KindParseFloat, Line: line, Err: err}
		}
		lon, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, &ParseError{Kind: KindParseFloat, Line: line, Err: err}
		}
		data.Sights = append(data.Sights, Sight{NodeID: nodeID, Lat: lat, Lon: lon, Category: category.Parse(fields[3])})
	}

	for i := 0; i < numEdges; i++ {
		txt, ok := nextLine()
		if !ok {
			return nil, &ParseError{Kind: KindIO, Line: line + 1, Err: io.ErrUnexpectedEOF}
		}
		fields := strings.Fields(txt)
		if len(fields) != 3 {
			return nil, &ParseError{Kind: KindIO, Line: line, Err: fmt.Errorf("edge line: want 3 fields, got %d", len(fields))}
		}
		src, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &ParseError{Kind: KindParseInt, Line: line, Err: err}
		}
		tgt, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &ParseError{Kind: KindParseInt, Line: line, Err: err}
		}
		dist, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, &ParseError{Kind: KindParseInt, Line: line, Err: err}
		}
		data.Edges = append(data.Edges, Edge{Src: src, Tgt: tgt, Dist: dist})
	}

	if err := sc.Err(); err != nil {
		return nil, &ParseError{Kind: KindIO, Line: line, Err: err}
	}

	return data, nil
}

func nextInt(nextLine func() (string, bool), line *int) (int, error) {
	txt, ok := nextLine()
	if !ok {
		return 0, &ParseError{Kind: KindIO, Line: *line + 1, Err: io.ErrUnexpectedEOF}
	}
	n, err := strconv.Atoi(strings.TrimSpace(txt))
	if err != nil {
		return 0, &ParseError{Kind: KindParseInt, Line: *line, Err: err}
	}
	return n, nil
}

// Encode writes nodes, sights and edges to w in FMI format. Edges must
// already be sorted by (src,tgt) — Encode does not sort or dedup.
func Encode(w io.Writer, nodes []Node, sights []Sight, edges []Edge) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%d\n%d\n%d\n", len(nodes), len(sights), len(edges)); err != nil {
		return err
	}
	for _, n := range nodes {
		if _, err := fmt.Fprintf(bw, "%d %s %s\n", n.ID, formatFloat(n.Lat), formatFloat(n.Lon)); err != nil {
			return err
		}
	}
	for _, s := range sights {
		if _, err := fmt.Fprintf(bw, "%d %s %s %s\n", s.NodeID, formatFloat(s.Lat), formatFloat(s.Lon), s.Category.String()); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", e.Src, e.Tgt, e.Dist); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
