package store

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/amirbrooks/sai/internal/task"
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

var (
	ErrCorruptLine = errors.New("corrupt line")
	ErrWrite       = errors.New("write failed")
	timeNow        = func() time.Time { return time.Now().UTC() }
)

// ReadWarning describes a persisted line that could not be decoded and was
// skipped. It satisfies errors.Is(err, ErrCorruptLine).
type ReadWarning struct {
	Line int
	Text string
	Err  error
}

func (w *ReadWarning) Error() string {
	return fmt.Sprintf("line %d cannot be read: %s", w.Line, w.Text)
}

func (w *ReadWarning) Is(target error) bool { return target == ErrCorruptLine }

func (w *ReadWarning) Unwrap() error { return w.Err }

// WriteError reports a failed save. The tasks in memory are unaffected.
// It satisfies errors.Is(err, ErrWrite).
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing to file %s: %v", e.Path, e.Err)
}

func (e *WriteError) Is(target error) bool { return target == ErrWrite }

func (e *WriteError) Unwrap() error { return e.Err }

// Store persists a task list to a single text file, one task per line.
type Store struct {
	path   string
	atomic bool
	logger *log.Logger
}

type Option func(*Store)

// WithLogger sets where skipped-line warnings and save diagnostics go.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAtomicWrites makes Save write a temp file and rename it over the data
// file. Without it the file is truncated and rewritten in place.
func WithAtomicWrites(on bool) Option {
	return func(s *Store) { s.atomic = on }
}

func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Path() string { return s.path }

// Load reads the data file, creating it (and its directory) when missing.
// Lines that fail to decode are skipped and reported as warnings; only an
// unreadable file is an error.
func (s *Store) Load() (*task.List, []ReadWarning, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return task.NewList(), nil, fmt.Errorf("create data directory: %w", err)
	}
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(s.path, nil, 0o644); err != nil {
			return task.NewList(), nil, fmt.Errorf("create data file: %w", err)
		}
		return task.NewList(), nil, nil
	}
	if err != nil {
		return task.NewList(), nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	list, warnings, err := s.read(f)
	if err != nil {
		return list, warnings, fmt.Errorf("read data file: %w", err)
	}
	return list, warnings, nil
}

func (s *Store) read(r io.Reader) (*task.List, []ReadWarning, error) {
	list := task.NewList()
	var warnings []ReadWarning

	// A bufio.Reader has no line length limit, so an oversized line is
	// skipped like any other bad line.
	br := bufio.NewReader(r)
	n := 0
	for {
		raw, rerr := br.ReadString('\n')
		if raw != "" {
			n++
			line := strings.TrimRight(raw, "\r\n")
			if strings.TrimSpace(line) != "" {
				t, err := DecodeLine(line)
				if err != nil {
					w := ReadWarning{Line: n, Text: line, Err: err}
					s.logger.Printf("Warning: %v", &w)
					warnings = append(warnings, w)
				} else {
					list.Add(t)
				}
			}
		}
		if errors.Is(rerr, io.EOF) {
			return list, warnings, nil
		}
		if rerr != nil {
			return list, warnings, rerr
		}
	}
}

// Save rewrites the whole data file from l.
func (s *Store) Save(l *task.List) error {
	var b strings.Builder
	for _, t := range l.Tasks() {
		b.WriteString(EncodeLine(t))
		b.WriteByte('\n')
	}
	data := []byte(b.String())

	var err error
	if s.atomic {
		err = atomicWriteFile(s.path, data, 0o644)
	} else {
		err = writeFileInPlace(s.path, data, 0o644)
	}
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	s.logger.Printf("saved %d tasks to %s", l.Len(), s.path)
	return nil
}

// writeFileInPlace truncates and rewrites path. A crash part way through
// leaves a truncated file behind.
func writeFileInPlace(path string, data []byte, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, ".tmp-"+newULID())
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Rename is atomic on same filesystem.
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func newULID() string {
	t := ulid.Timestamp(timeNow())
	entropy := ulid.Monotonic(randReader{}, 0)
	id, err := ulid.New(t, entropy)
	if err != nil {
		// fallback
		return fmt.Sprintf("%d", timeNow().UnixNano())
	}
	return strings.ToUpper(id.String())
}
