package ftp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/hupe1980/hups/blobstore"
	"github.com/hupe1980/hups/resource"
)

// DefaultPort is appended to addresses without a port.
const DefaultPort = "21"

// Client is the subset of an FTP control connection the store needs.
type Client interface {
	Retr(path string) (io.ReadCloser, error)
	NameList(path string) ([]string, error)
	Quit() error
}

// Dialer opens a logged-in control connection.
type Dialer func(ctx context.Context) (Client, error)

// Store implements blobstore.BlobStore over FTP.
type Store struct {
	addr string
	root string
	dial Dialer
	rc   *resource.Controller
}

type options struct {
	root     string
	user     string
	password string
	timeout  time.Duration
	rc       *resource.Controller
	dial     Dialer
}

// Option configures New.
type Option func(*options)

// WithRoot sets the directory names are resolved against.
func WithRoot(dir string) Option {
	return func(o *options) { o.root = dir }
}

// WithCredentials replaces the anonymous login.
func WithCredentials(user, password string) Option {
	return func(o *options) {
		o.user = user
		o.password = password
	}
}

// WithTimeout bounds dialing the control connection.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithController charges downloaded bytes against the controller's IO limit.
func WithController(rc *resource.Controller) Option {
	return func(o *options) { o.rc = rc }
}

// WithDialer replaces the network dialer.
func WithDialer(d Dialer) Option {
	return func(o *options) { o.dial = d }
}

// New creates a store for the server at addr (host or host:port). No
// connection is made until the first Open or List.
func New(addr string, opts ...Option) (*Store, error) {
	if addr == "" {
		return nil, errors.New("ftp: empty address")
	}
	if !strings.Contains(addr, ":") || strings.HasSuffix(addr, "]") {
		addr += ":" + DefaultPort
	}

	o := options{user: "anonymous", password: "anonymous", timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{addr: addr, root: o.root, rc: o.rc, dial: o.dial}
	if s.dial == nil {
		s.dial = func(ctx context.Context) (Client, error) {
			c, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(o.timeout))
			if err != nil {
				return nil, err
			}
			if err := c.Login(o.user, o.password); err != nil {
				_ = c.Quit()
				return nil, err
			}
			return serverConn{c}, nil
		}
	}
	return s, nil
}

// Addr returns the host:port of the server.
func (s *Store) Addr() string { return s.addr }

// Root returns the directory names are resolved against.
func (s *Store) Root() string { return s.root }

func (s *Store) key(name string) string {
	if s.root == "" {
		return name
	}
	return path.Join(s.root, name)
}

// Open downloads the named file.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)
	c, err := s.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("ftp %s: %w", s.addr, err)
	}
	defer func() { _ = c.Quit() }()

	r, err := c.Retr(key)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("RETR %s: %w", key, blobstore.ErrNotFound)
		}
		return nil, fmt.Errorf("RETR %s: %w", key, err)
	}
	data, err := io.ReadAll(resource.NewRateLimitedReader(ctx, r, s.rc))
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("RETR %s: %w", key, err)
	}
	return blobstore.NewBytesBlob(data), nil
}

// List returns the sorted names in the root directory starting with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	dir := s.root
	if dir == "" {
		dir = "."
	}
	c, err := s.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("ftp %s: %w", s.addr, err)
	}
	defer func() { _ = c.Quit() }()

	entries, err := c.NameList(dir)
	if err != nil {
		return nil, fmt.Errorf("NLST %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		n := path.Base(e)
		if n == "." || n == ".." || !strings.HasPrefix(n, prefix) {
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func isNotFound(err error) bool {
	var tpErr *textproto.Error
	return errors.As(err, &tpErr) && tpErr.Code == ftp.StatusFileUnavailable
}

// serverConn adapts *ftp.ServerConn to Client.
type serverConn struct {
	*ftp.ServerConn
}

func (c serverConn) Retr(path string) (io.ReadCloser, error) {
	r, err := c.ServerConn.Retr(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}
