package filesystem

import (
	"errors"
	"fmt"
	"sync"
)

// Dialer opens an SFTP connection to user@host:port.
type Dialer func(host string, port int, user string) (*SFTPConnection, error)

// Resolver maps path strings to the FileSystem that serves them.
// Local paths share one RealFileSystem. SFTP URLs with the same endpoint share
// one connection, opened on first use and closed by Close. A failed dial is
// remembered, so an unreachable endpoint is only tried once.
type Resolver struct {
	dial  Dialer
	local *RealFileSystem

	mu     sync.Mutex
	remote map[string]FileSystem
	failed map[string]error
	conns  []*SFTPConnection
}

// NewResolver creates a Resolver that dials SFTP servers with Connect.
func NewResolver() *Resolver {
	return NewResolverWithDialer(Connect)
}

// NewResolverWithDialer creates a Resolver that dials SFTP servers with dial.
func NewResolverWithDialer(dial Dialer) *Resolver {
	return &Resolver{
		dial:   dial,
		local:  NewRealFileSystem(),
		remote: make(map[string]FileSystem),
		failed: make(map[string]error),
	}
}

// Close closes every SFTP connection the resolver opened.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, conn := range r.conns {
		errs = append(errs, conn.Close())
	}

	r.conns = nil
	r.remote = make(map[string]FileSystem)
	r.failed = make(map[string]error)

	return errors.Join(errs...)
}

// Register makes fs serve every SFTP URL whose endpoint is user@host:port
// instead of dialing it.
func (r *Resolver) Register(endpoint string, fs FileSystem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.remote[endpoint] = fs
}

// Resolve returns the FileSystem for pathStr and the path to use with it
// (stripped of any URL prefix).
func (r *Resolver) Resolve(pathStr string) (FileSystem, string, error) {
	parsed, err := ParsePath(pathStr)
	if err != nil {
		return nil, "", err
	}

	if !parsed.IsRemote {
		return r.local, parsed.LocalPath, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	endpoint := parsed.Endpoint()
	if fs, ok := r.remote[endpoint]; ok {
		return fs, parsed.Path, nil
	}

	if err, ok := r.failed[endpoint]; ok {
		return nil, "", err
	}

	conn, err := r.dial(parsed.Host, parsed.Port, parsed.User)
	if err != nil {
		err = fmt.Errorf("failed to connect to %s: %w", endpoint, err)
		r.failed[endpoint] = err

		return nil, "", err
	}

	fs := NewSFTPFileSystem(conn.Client())
	r.remote[endpoint] = fs
	r.conns = append(r.conns, conn)

	return fs, parsed.Path, nil
}
