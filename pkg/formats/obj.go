package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/objview/pkg/encoding"
	"github.com/Faultbox/objview/pkg/math"
)

// OBJ format errors.
var (
	ErrMalformedVertex = errors.New("malformed OBJ vertex: expected 'v <x> <y> <z>'")
	ErrMalformedObject = errors.New("malformed OBJ object marker: expected 'o <name>'")
	ErrMalformedLine   = errors.New("malformed OBJ line element")
)

// maxOBJLine bounds a single line. Exporters put whole polylines on one line.
const maxOBJLine = 1 << 20

// Edge connects two vertices by index into OBJ.Vertices.
type Edge struct {
	A, B int
}

// OBJ holds the parsed subset of an OBJ file.
type OBJ struct {
	Vertices []math.Vec3 // Positions in file order
	Objects  []string    // Object names in file order, up to the filter cutoff
	Edges    []Edge      // Empty unless ParseOptions.LineElements is set

	// StoppedAt is the first object name rejected by the filter, or "" if
	// the whole file was read.
	StoppedAt string
}

// ParseOptions controls ParseOBJ.
type ParseOptions struct {
	// Filter restricts loading to the named objects. Scanning stops at the
	// first "o" marker whose name is not in Filter; later lines are never
	// read, even if they belong to a permitted object. Empty means no filter.
	Filter []string

	// LineElements turns "l" polyline elements into edges. Off by default,
	// which leaves Edges empty.
	LineElements bool

	// Encoding is a WHATWG label for the source text encoding ("" = UTF-8).
	Encoding string
}

// LineError reports the line a parse fault occurred on.
type LineError struct {
	Line int    // 1-based
	Text string // Offending line, trimmed
	Err  error
}

func (e *LineError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseOBJ parses OBJ data from a reader.
func ParseOBJ(r io.Reader, opts ParseOptions) (*OBJ, error) {
	src, err := encoding.NewReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	var allowed map[string]struct{}
	if len(opts.Filter) > 0 {
		allowed = make(map[string]struct{}, len(opts.Filter))
		for _, name := range opts.Filter {
			allowed[name] = struct{}{}
		}
	}

	obj := &OBJ{}
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOBJLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields)
			if err != nil {
				return nil, lineError(lineNo, scanner.Text(), err)
			}
			obj.Vertices = append(obj.Vertices, v)

		case "o":
			if len(fields) < 2 {
				return nil, lineError(lineNo, scanner.Text(), ErrMalformedObject)
			}
			name := fields[1]
			if allowed != nil {
				if _, ok := allowed[name]; !ok {
					obj.StoppedAt = name
					return obj, nil
				}
			}
			obj.Objects = append(obj.Objects, name)

		case "l":
			if !opts.LineElements {
				continue
			}
			edges, err := parseLine(fields, len(obj.Vertices))
			if err != nil {
				return nil, lineError(lineNo, scanner.Text(), err)
			}
			obj.Edges = append(obj.Edges, edges...)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &LineError{Line: lineNo + 1, Err: err}
	}

	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
// A missing file yields an error satisfying errors.Is(err, fs.ErrNotExist).
func ParseOBJFile(path string, opts ParseOptions) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f, opts)
}

func parseVertex(fields []string) (math.Vec3, error) {
	if len(fields) < 4 {
		return math.Vec3{}, ErrMalformedVertex
	}

	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: %v", ErrMalformedVertex, err)
		}
		c[i] = f
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parseLine converts "l a b c ..." into the edges (a,b) (b,c) ...
// Indices are 1-based; negative indices count back from the last vertex.
// Texture coordinates ("a/t") are ignored.
func parseLine(fields []string, vertexCount int) ([]Edge, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: need at least two vertices", ErrMalformedLine)
	}

	indices := make([]int, 0, len(fields)-1)
	for _, tok := range fields[1:] {
		if slash := strings.IndexByte(tok, '/'); slash >= 0 {
			tok = tok[:slash]
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
		}

		idx := n - 1
		if n < 0 {
			idx = vertexCount + n
		}
		if n == 0 || idx < 0 || idx >= vertexCount {
			return nil, fmt.Errorf("%w: vertex index %d out of range", ErrMalformedLine, n)
		}
		indices = append(indices, idx)
	}

	edges := make([]Edge, 0, len(indices)-1)
	for i := 1; i < len(indices); i++ {
		edges = append(edges, Edge{A: indices[i-1], B: indices[i]})
	}
	return edges, nil
}

func lineError(line int, text string, err error) error {
	return &LineError{Line: line, Text: strings.TrimSpace(text), Err: err}
}
