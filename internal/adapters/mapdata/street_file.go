package mapdata

import (
	"bufio"
	"context"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/platform/obs"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadStreetEdges parses the street map text format: a street name line, a
// line with the number of edges on that street, then one
// "lat1 lon1 lat2 lon2" line per edge. Blocks repeat until EOF.
func ReadStreetEdges(r io.Reader) ([]domain.StreetEdge, error) {
	sc := bufio.NewScanner(r)
	lineNo := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return sc.Text(), true
	}

	var edges []domain.StreetEdge
	for {
		line, ok := next()
		if !ok {
			break
		}
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}

		countLine, ok := next()
		if !ok {
			return nil, fmt.Errorf("read street edges: line %d: street %q has no edge count", lineNo, name)
		}
		count, err := strconv.Atoi(strings.TrimSpace(countLine))
		if err != nil || count < 0 {
			return nil, fmt.Errorf("read street edges: line %d: bad edge count %q", lineNo, countLine)
		}

		for i := 0; i < count; i++ {
			edgeLine, ok := next()
			if !ok {
				return nil, fmt.Errorf("read street edges: street %q: expected %d edges, got %d", name, count, i)
			}
			fields := strings.Fields(edgeLine)
			if len(fields) != 4 {
				return nil, fmt.Errorf("read street edges: line %d: expected 4 coordinates, got %d", lineNo, len(fields))
			}
			from, err := domain.ParseCoordinate(fields[0], fields[1])
			if err != nil {
				return nil, fmt.Errorf("read street edges: line %d: %w", lineNo, err)
			}
			to, err := domain.ParseCoordinate(fields[2], fields[3])
			if err != nil {
				return nil, fmt.Errorf("read street edges: line %d: %w", lineNo, err)
			}
			edges = append(edges, domain.StreetEdge{From: from, To: to, Street: name})
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read street edges: %w", err)
	}
	return edges, nil
}

// FileStreetSource serves street edges from a map data file.
type FileStreetSource struct{ Path string }

func NewFileStreetSource(path string) *FileStreetSource {
	return &FileStreetSource{Path: path}
}

func (s *FileStreetSource) ListStreetEdges(ctx context.Context) (_ []domain.StreetEdge, err error) {
	defer obs.Time(ctx, "mapdata.ListStreetEdges")(&err)

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("list street edges: open %q: %w", s.Path, err)
	}
	defer f.Close()

	return ReadStreetEdges(f)
}
