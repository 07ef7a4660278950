// Package goalfile reads and writes the pipe-delimited goal record file.
//
// Each line holds one goal as "Variant|name|points", e.g.
//
//	EternalGoal|Pray Daily|300
//
// Names are not escaped; a name containing '|' will not survive a reload.
package goalfile

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/rcliao/eternal-quest/internal/goal"
)

const separator = "|"

var (
	ErrIO             = errors.New("goal file i/o failure")
	ErrNotFound       = errors.New("goal file not found")
	ErrUnknownVariant = errors.New("unknown goal variant")
)

// IOError reports a failed open, read, write or close on the goal file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// UnknownVariantError aborts a load when a record names no known variant.
type UnknownVariantError struct {
	Line    int
	Variant string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("line %d: unknown goal variant %q", e.Line, e.Variant)
}

func (e *UnknownVariantError) Is(target error) bool { return target == ErrUnknownVariant }

// Skip describes a malformed line that Load ignored.
type Skip struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// LoadResult holds the goals read from a file, in file order, plus any
// lines that were skipped.
type LoadResult struct {
	Goals   []*goal.Goal `json:"-"`
	Skipped []Skip       `json:"skipped,omitempty"`
}

// Codec reads and writes goal files.
//
// With ChecklistProgress set, checklist goals are written with two extra
// fields, "ChecklistGoal|name|points|completed|target", and Load accepts
// that form. Without it a reloaded checklist always starts at 0 of
// goal.DefaultChecklistTarget.
type Codec struct {
	ChecklistProgress bool
	Logger            *slog.Logger
}

// Save writes goals to path using the plain three-field format.
func Save(goals []*goal.Goal, path string) error {
	return Codec{}.Save(goals, path)
}

// Load reads goals from path using the plain three-field format.
func Load(path string) (*LoadResult, error) {
	return Codec{}.Load(path)
}

func (c Codec) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Save overwrites path with one record per goal.
func (c Codec) Save(goals []*goal.Goal, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "open", Path: path, Err: err}
	}

	w := bufio.NewWriter(f)
	for _, g := range goals {
		if strings.ContainsAny(g.Name(), separator+"\r\n") {
			c.logger().Warn("goal name will not round-trip", "name", g.Name())
		}
		if _, err := w.WriteString(c.encode(g) + "\n"); err != nil {
			f.Close()
			return &IOError{Op: "write", Path: path, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}

	c.logger().Debug("goals saved", "path", path, "count", len(goals))
	return nil
}

func (c Codec) encode(g *goal.Goal) string {
	fields := []string{g.Kind().String(), g.Name(), strconv.Itoa(g.Points())}
	if c.ChecklistProgress && g.Kind() == goal.Checklist {
		fields = append(fields, strconv.Itoa(g.Completed()), strconv.Itoa(g.Target()))
	}
	return strings.Join(fields, separator)
}

// Load reads every record in path. A missing file yields an empty result
// and ErrNotFound. Malformed lines are skipped; an unknown variant aborts
// the whole load.
func (c Codec) Load(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &LoadResult{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return &LoadResult{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	res := &LoadResult{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		g, reason, err := c.decode(lineNo, line)
		if err != nil {
			return &LoadResult{}, err
		}
		if reason != "" {
			res.Skipped = append(res.Skipped, Skip{Line: lineNo, Text: line, Reason: reason})
			c.logger().Warn("skipping malformed goal record", "path", path, "line", lineNo, "reason", reason)
			continue
		}
		res.Goals = append(res.Goals, g)
	}
	if err := sc.Err(); err != nil {
		return &LoadResult{}, &IOError{Op: "read", Path: path, Err: err}
	}

	c.logger().Debug("goals loaded", "path", path, "count", len(res.Goals), "skipped", len(res.Skipped))
	return res, nil
}

// decode parses one record. A non-empty reason means the line is skipped;
// a non-nil error is fatal.
func (c Codec) decode(lineNo int, line string) (*goal.Goal, string, error) {
	fields := strings.Split(line, separator)

	extended := c.ChecklistProgress && len(fields) == 5 && fields[0] == goal.Checklist.String()
	if len(fields) != 3 && !extended {
		return nil, fmt.Sprintf("expected 3 fields, got %d", len(fields)), nil
	}

	points, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return nil, fmt.Sprintf("invalid points %q for goal %q", fields[2], fields[1]), nil
	}

	kind, err := goal.ParseKind(fields[0])
	if err != nil {
		return nil, "", &UnknownVariantError{Line: lineNo, Variant: fields[0]}
	}

	completed, target := 0, goal.DefaultChecklistTarget
	if extended {
		if completed, err = strconv.Atoi(strings.TrimSpace(fields[3])); err != nil {
			return nil, fmt.Sprintf("invalid completed count %q", fields[3]), nil
		}
		if target, err = strconv.Atoi(strings.TrimSpace(fields[4])); err != nil || target < 1 {
			return nil, fmt.Sprintf("invalid target %q", fields[4]), nil
		}
	}

	g, err := goal.Restore(kind, fields[1], points, completed, target)
	if err != nil {
		return nil, err.Error(), nil
	}
	return g, "", nil
}
