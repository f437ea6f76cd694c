package filesystem

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultSFTPPort is used when an SFTP URL carries no port.
const DefaultSFTPPort = 22

// ParsedPath represents either a local path or an SFTP URL.
type ParsedPath struct {
	IsRemote bool

	// For local paths
	LocalPath string

	// For SFTP paths
	Host string
	Port int
	User string
	Path string // Remote path
}

// IsSFTPURL reports whether path uses the sftp:// scheme.
func IsSFTPURL(path string) bool {
	return strings.HasPrefix(path, "sftp://")
}

// ParsePath parses a path string, detecting whether it's a local path or SFTP URL.
// SFTP URLs have the format: sftp://user@host:port/path/to/file
// Port is optional (defaults to 22)
// Examples:
//   - sftp://joe@myserver.com/images/disk.img
//   - sftp://joe@myserver.com:2222//srv/images/disk.img
//   - /local/path/to/disk.img (local path)
func ParsePath(path string) (*ParsedPath, error) {
	if IsSFTPURL(path) {
		return parseSFTPURL(path)
	}

	return &ParsedPath{
		IsRemote:  false,
		LocalPath: path,
	}, nil
}

// Endpoint identifies the SSH server a remote path lives on, as user@host:port.
// Paths with equal endpoints share one connection.
func (p *ParsedPath) Endpoint() string {
	if !p.IsRemote {
		return ""
	}

	return fmt.Sprintf("%s@%s:%d", p.User, p.Host, p.Port)
}

// FSPath returns the path to hand to the resolved FileSystem.
func (p *ParsedPath) FSPath() string {
	if p.IsRemote {
		return p.Path
	}

	return p.LocalPath
}

// parseSFTPURL parses an SFTP URL into its components.
//
//nolint:cyclop // Complexity from SFTP URL validation (scheme, user, host, port, path)
func parseSFTPURL(sftpURL string) (*ParsedPath, error) {
	u, err := url.Parse(sftpURL) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.Scheme != "sftp" {
		return nil, fmt.Errorf("expected sftp:// scheme, got %s://", u.Scheme) //nolint:err113 // URL validation with actual scheme
	}

	if u.User == nil || u.User.Username() == "" {
		return nil, fmt.Errorf("SFTP URL must include username (sftp://user@host/path)") //nolint:err113,perfsprint // URL validation with format guidance
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("SFTP URL must include host") //nolint:err113,perfsprint // URL validation error
	}

	port := DefaultSFTPPort
	if portStr := u.Port(); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: %w", err)
		}

		if p < 1 || p > 65535 {
			return nil, fmt.Errorf("port out of range: %d", p) //nolint:err113 // URL validation with actual value
		}

		port = p
	}

	// A file copy needs a file name, so the home directory alone is not a target.
	//   sftp://user@host/file  -> file relative to the home directory
	//   sftp://user@host//file -> absolute path /file
	remotePath := u.Path
	if remotePath == "" || remotePath == "/" || remotePath == "//" {
		return nil, fmt.Errorf("SFTP URL must include a file path") //nolint:err113,perfsprint // URL validation error
	}

	if strings.HasPrefix(remotePath, "//") {
		remotePath = remotePath[1:]
	} else {
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &ParsedPath{
		IsRemote: true,
		Host:     host,
		Port:     port,
		User:     u.User.Username(),
		Path:     remotePath,
	}, nil
}
