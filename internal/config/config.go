// Package config manages the gsc dotfile: the YAML file holding the
// username, session cookie, and server endpoint between invocations. The
// file lives at $GSC_LOGIN, or ~/.gsclogin when the variable is unset.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gsc/internal/errors"
)

const (
	// DefaultEndpoint is used until a dotfile or GSC_ENDPOINT overrides it.
	DefaultEndpoint = "http://localhost:9090"

	dotfileVar  = "GSC_LOGIN"
	endpointVar = "GSC_ENDPOINT"
	dotfileName = ".gsclogin"
)

// Dotfile is the on-disk format. The cookie is stored as one
// ‘key=value’ string, matching what the server's Set-Cookie supplies.
type Dotfile struct {
	Username string `yaml:"username,omitempty"`
	Cookie   string `yaml:"cookie,omitempty"`
	Endpoint string `yaml:"endpoint"`
}

// Config is the runtime view of the dotfile plus the resolved endpoint.
// Commands mutate it through the cookie and username setters and call
// Save to persist.
type Config struct {
	dotfile     string
	Username    string
	Endpoint    string
	cookieKey   string
	cookieValue string
}

// New resolves the dotfile location from the environment. A Config with
// no reachable dotfile still works for commands that need no session.
func New() *Config {
	c := &Config{Endpoint: DefaultEndpoint}

	if path := os.Getenv(dotfileVar); path != "" {
		c.dotfile = path
	} else if home, err := os.UserHomeDir(); err == nil {
		c.dotfile = filepath.Join(home, dotfileName)
	}

	if ep := os.Getenv(endpointVar); ep != "" {
		c.Endpoint = ep
	}

	return c
}

// DotfilePath returns the resolved dotfile location, empty when none
// could be determined.
func (c *Config) DotfilePath() string {
	return c.dotfile
}

// Load reads the dotfile into the config. A missing file is not an
// error; the config keeps its defaults. GSC_ENDPOINT wins over the
// dotfile's endpoint so a session can be pointed at a test server.
func (c *Config) Load() error {
	if c.dotfile == "" {
		return nil
	}

	raw, err := os.ReadFile(c.dotfile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.WrapFile(c.dotfile, err)
	}

	var df Dotfile
	if err := yaml.Unmarshal(raw, &df); err != nil {
		return errors.WrapFile(c.dotfile, fmt.Errorf("could not parse dotfile: %w", err))
	}

	if df.Username != "" {
		c.Username = df.Username
	}
	if df.Endpoint != "" && os.Getenv(endpointVar) == "" {
		c.Endpoint = df.Endpoint
	}
	if key, value, ok := ParseCookie(df.Cookie); ok {
		c.cookieKey, c.cookieValue = key, value
	}

	return nil
}

// Save writes the config back to the dotfile with owner-only
// permissions, since the cookie is a login credential.
func (c *Config) Save() error {
	if c.dotfile == "" {
		return &errors.GscError{Type: errors.ErrTypeFile, Message: "no dotfile location (set GSC_LOGIN or HOME)"}
	}

	df := Dotfile{
		Username: c.Username,
		Endpoint: c.Endpoint,
	}
	if c.cookieKey != "" {
		df.Cookie = c.cookieKey + "=" + c.cookieValue
	}

	raw, err := yaml.Marshal(&df)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.dotfile, raw, 0o600); err != nil {
		return errors.WrapFile(c.dotfile, err)
	}
	return nil
}

// Cookie returns the session cookie, ok false when not logged in.
func (c *Config) Cookie() (key, value string, ok bool) {
	return c.cookieKey, c.cookieValue, c.cookieKey != ""
}

// SetCookie replaces the session cookie.
func (c *Config) SetCookie(key, value string) {
	c.cookieKey = key
	c.cookieValue = value
}

// ClearSession forgets the cookie and the username.
func (c *Config) ClearSession() {
	c.cookieKey = ""
	c.cookieValue = ""
	c.Username = ""
}

// ParseCookie splits a ‘key=value’ cookie string, tolerating trailing
// attributes after a semicolon as they appear in Set-Cookie headers.
func ParseCookie(cookie string) (key, value string, ok bool) {
	if i := strings.IndexByte(cookie, ';'); i >= 0 {
		cookie = cookie[:i]
	}
	i := strings.IndexByte(cookie, '=')
	if i < 0 {
		return "", "", false
	}
	return cookie[:i], cookie[i+1:], true
}
