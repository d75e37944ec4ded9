package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/moneytrail/internal/model"
)

// ErrUnsupportedFormat is returned when no parser handles a file extension.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Parser converts a statement export into processed sheets.
type Parser interface {
	Parse(name string, r io.Reader) ([]model.SheetData, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a statement file found by Scan.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Supports reports whether a parser is registered for the file's extension.
func (r *Registry) Supports(path string) bool {
	return r.Get(formatOf(path)) != nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&XLSXParser{})
	r.Register(&CSVParser{})
	return r
}

func formatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ReadFile parses path with the parser registered for its extension.
func (r *Registry) ReadFile(path string) ([]model.SheetData, error) {
	format := formatOf(path)
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets, err := p.Parse(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return sheets, nil
}

// Scan returns the supported statement files directly inside dir.
func (r *Registry) Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !r.Supports(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// FileSource loads sheets from files on disk.
type FileSource struct {
	Registry *Registry
}

// NewFileSource returns a FileSource backed by the default parsers.
func NewFileSource() *FileSource {
	return &FileSource{Registry: DefaultRegistry()}
}

// Load reads the workbook at path.
func (s *FileSource) Load(ctx context.Context, path string) ([]model.SheetData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Registry.ReadFile(path)
}

// uniqueHeaders renames repeated header texts so no column is lost: the first
// "X" stays, later ones become "X_1", "X_2" and so on, skipping names already
// used. Blank headers are left alone.
func uniqueHeaders(headers []string) []string {
	out := make([]string, len(headers))
	count := make(map[string]int, len(headers))
	for i, h := range headers {
		out[i] = h
		if strings.TrimSpace(h) == "" {
			continue
		}
		n := count[h]
		if n == 0 {
			count[h] = 1
			continue
		}
		name := fmt.Sprintf("%s_%d", h, n)
		for count[name] > 0 {
			n++
			name = fmt.Sprintf("%s_%d", h, n)
		}
		count[h] = n + 1
		count[name] = 1
		out[i] = name
	}
	return out
}
