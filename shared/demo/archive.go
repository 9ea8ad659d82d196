package demo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quasilyte/gdata"
)

var (
	ErrNotFound = errors.New("demo not found")
	ErrBadName  = errors.New("invalid demo name")
)

const itemPrefix = "demo-"

// Archive keeps named demos in the per-user data directory of an app.
type Archive struct {
	m *gdata.Manager
}

// OpenArchive opens the data directory of appName.
func OpenArchive(appName string) (*Archive, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open demo archive: %w", err)
	}
	return &Archive{m: m}, nil
}

func itemKey(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return itemPrefix + name, nil
}

// Save stores a recorded demo stream under name, replacing any older one.
func (a *Archive) Save(name string, stream []byte) error {
	key, err := itemKey(name)
	if err != nil {
		return err
	}
	if err := a.m.SaveItem(key, stream); err != nil {
		return fmt.Errorf("save demo %s: %w", name, err)
	}
	return nil
}

// Load returns the stream stored under name.
func (a *Archive) Load(name string) ([]byte, error) {
	key, err := itemKey(name)
	if err != nil {
		return nil, err
	}
	data, err := a.m.LoadItem(key)
	if err != nil {
		return nil, fmt.Errorf("load demo %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, nil
}

// Exists reports whether a demo is stored under name.
func (a *Archive) Exists(name string) bool {
	key, err := itemKey(name)
	if err != nil {
		return false
	}
	return a.m.ItemExists(key)
}

// Delete removes the demo stored under name.
func (a *Archive) Delete(name string) error {
	key, err := itemKey(name)
	if err != nil {
		return err
	}
	if err := a.m.DeleteItem(key); err != nil {
		return fmt.Errorf("delete demo %s: %w", name, err)
	}
	return nil
}
