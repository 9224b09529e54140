package storage

import (
	"net/url"

	"boscoin.io/benor/lib/errors"
)

// Config selects the leveldb storage: `memory://` keeps the records in
// memory, `file:///path/to/db` stores them in the directory.
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.InvalidStorage.Clone().SetData("error", err.Error())
	}

	switch u.Scheme {
	case "memory":
		return &Config{Scheme: u.Scheme}, nil
	case "file":
		path := u.Path
		if len(u.Host) > 0 {
			path = u.Host + path
		}
		if len(path) < 1 {
			return nil, errors.InvalidStorage.Clone().SetData("config", s)
		}
		return &Config{Scheme: u.Scheme, Path: path}, nil
	}

	return nil, errors.InvalidStorage.Clone().SetData("config", s)
}

func (c Config) String() string {
	return c.Scheme + "://" + c.Path
}
