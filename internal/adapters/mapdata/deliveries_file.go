package mapdata

import (
	"bufio"
	"context"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/platform/obs"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ReadManifest parses the deliveries text format. The first line is the
// depot as "lat lon"; each following line is "lat lon:item". Malformed
// delivery lines are logged and skipped. A bad depot line is an error.
func ReadManifest(ctx context.Context, name string, r io.Reader) (*domain.Manifest, error) {
	logger := obs.Logger(ctx)
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
		return nil, fmt.Errorf("read manifest %q: missing depot line", name)
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 2 {
		return nil, fmt.Errorf("read manifest %q: depot line %q: expected \"lat lon\"", name, sc.Text())
	}
	depot, err := domain.ParseCoordinate(fields[0], fields[1])
	if err != nil {
		return nil, fmt.Errorf("read manifest %q: depot: %w", name, err)
	}

	m := &domain.Manifest{Name: name, Depot: depot}
	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		loc, item, ok := strings.Cut(line, ":")
		if !ok {
			logger.Warn("skipping delivery line: missing colon", "line", lineNo, "text", line)
			continue
		}
		item = strings.TrimSpace(item)
		if item == "" {
			logger.Warn("skipping delivery line: missing item", "line", lineNo, "text", line)
			continue
		}
		parts := strings.Fields(loc)
		if len(parts) != 2 {
			logger.Warn("skipping delivery line: bad coordinates", "line", lineNo, "text", line)
			continue
		}
		c, err := domain.ParseCoordinate(parts[0], parts[1])
		if err != nil {
			logger.Warn("skipping delivery line", "line", lineNo, "err", err)
			continue
		}

		m.Deliveries = append(m.Deliveries, domain.DeliveryStop{Item: item, Location: c})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read manifest %q: %w", name, err)
	}

	return m, nil
}

// LoadManifestFile reads a deliveries file. The manifest is named after the
// file without its extension.
func LoadManifestFile(ctx context.Context, path string) (_ *domain.Manifest, err error) {
	defer obs.Time(ctx, "mapdata.LoadManifestFile")(&err)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load manifest: open %q: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadManifest(ctx, name, f)
}

// FileManifestSource serves manifests from "<Dir>/<name>.txt" deliveries files.
type FileManifestSource struct{ Dir string }

func NewFileManifestSource(dir string) *FileManifestSource {
	return &FileManifestSource{Dir: dir}
}

func (s *FileManifestSource) GetManifest(ctx context.Context, name string) (*domain.Manifest, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("get manifest %q: invalid name: %w", name, domain.ErrManifestNotFound)
	}

	path := filepath.Join(s.Dir, name+".txt")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("get manifest %q: %w", name, domain.ErrManifestNotFound)
	}

	return LoadManifestFile(ctx, path)
}
