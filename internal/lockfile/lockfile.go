// Package lockfile locates and parses the credentials file the running
// League client writes into its install directory.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultName is the file name the client writes.
const DefaultName = "lockfile"

var (
	// ErrNotFound is returned when no candidate directory holds a lockfile.
	ErrNotFound = errors.New("lockfile does not exist in any of the specified paths")
	// ErrMalformed is returned when the lockfile content cannot be parsed.
	ErrMalformed = errors.New("malformed lockfile")
)

// Credentials is the content of the lockfile:
// processName:processId:port:password:protocol
type Credentials struct {
	ProcessName string
	PID         int
	Port        int
	Password    string
	Protocol    string
}

// BaseURL returns the API root for the given host.
func (c Credentials) BaseURL(host string) string {
	return fmt.Sprintf("%s://%s:%d", c.Protocol, host, c.Port)
}

// Resolver probes candidate directories for the lockfile.
type Resolver struct {
	Name   string
	Logger *zap.Logger
}

// NewResolver returns a resolver looking for DefaultName.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{Name: DefaultName, Logger: logger}
}

// Find returns the path of the first lockfile found. Candidates that are not
// directories are skipped.
func (r *Resolver) Find(dirs []string) (string, error) {
	name := r.Name
	if name == "" {
		name = DefaultName
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			r.Logger.Debug("Path does not exist", zap.String("path", dir))
			continue
		}
		r.Logger.Debug("Valid client path", zap.String("path", dir))

		path := filepath.Join(dir, name)
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			r.Logger.Debug("Found lockfile", zap.String("path", path))
			return path, nil
		}
	}
	return "", ErrNotFound
}

// Resolve finds, reads and parses the lockfile.
func (r *Resolver) Resolve(dirs []string) (Credentials, string, error) {
	path, err := r.Find(dirs)
	if err != nil {
		return Credentials{}, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, path, fmt.Errorf("failed to read lockfile: %w", err)
	}
	creds, err := Parse(data)
	if err != nil {
		return Credentials{}, path, err
	}
	return creds, path, nil
}

// Parse decodes the five colon-separated lockfile fields.
func Parse(data []byte) (Credentials, error) {
	line := strings.TrimSpace(string(data))
	fields := strings.Split(line, ":")
	if len(fields) != 5 {
		return Credentials{}, fmt.Errorf("%w: expected 5 fields, got %d", ErrMalformed, len(fields))
	}

	pid, err := strconv.Atoi(fields[1])
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: process id %q", ErrMalformed, fields[1])
	}
	port, err := strconv.Atoi(fields[2])
	if err != nil || port <= 0 || port > 65535 {
		return Credentials{}, fmt.Errorf("%w: port %q", ErrMalformed, fields[2])
	}
	if fields[3] == "" {
		return Credentials{}, fmt.Errorf("%w: empty password", ErrMalformed)
	}
	if fields[4] == "" {
		return Credentials{}, fmt.Errorf("%w: empty protocol", ErrMalformed)
	}

	return Credentials{
		ProcessName: fields[0],
		PID:         pid,
		Port:        port,
		Password:    fields[3],
		Protocol:    fields[4],
	}, nil
}
