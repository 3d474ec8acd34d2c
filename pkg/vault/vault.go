// Package vault exposes the host document store primitives the agile core
// consumes: existence lookups, enumeration, folder and file creation, reads
// and renames. Paths are vault-relative and slash separated.
package vault

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Entry is a direct child of a folder.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// Vault is the set of host primitives used by the structure manager, the
// file factory and the content parsers.
type Vault interface {
	Folder(p string) Lookup
	File(p string) Lookup
	Children(p string) ([]Entry, error)
	CreateFolder(p string) error
	CreateFile(p, content string) error
	Read(p string) (string, error)
	Rename(from, to string) error
}

// FS implements Vault on top of an afero filesystem.
type FS struct {
	fs afero.Fs
}

// New wraps fs. Vault paths are resolved against its root.
func New(fs afero.Fs) *FS {
	return &FS{fs: fs}
}

// Open returns a vault rooted at dir on the OS filesystem.
func Open(dir string) (*FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open vault: %s is not a directory", dir)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// Join builds a vault path from its elements.
func Join(elem ...string) string {
	return strings.TrimPrefix(path.Join(elem...), "/")
}

func native(p string) string {
	return filepath.FromSlash(path.Join("/", p))
}

func (v *FS) Folder(p string) Lookup {
	info, err := v.fs.Stat(native(p))
	if err != nil || !info.IsDir() {
		return NotFound
	}
	return Found(Join(p))
}

func (v *FS) File(p string) Lookup {
	info, err := v.fs.Stat(native(p))
	if err != nil || info.IsDir() {
		return NotFound
	}
	return Found(Join(p))
}

// Children lists the direct children of folder p in enumeration order.
func (v *FS) Children(p string) ([]Entry, error) {
	infos, err := afero.ReadDir(v.fs, native(p))
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{
			Name:  info.Name(),
			Path:  Join(p, info.Name()),
			IsDir: info.IsDir(),
		})
	}
	return entries, nil
}

// CreateFolder creates folder p. It fails with an os.ErrExist error if p exists.
func (v *FS) CreateFolder(p string) error {
	if _, err := v.fs.Stat(native(p)); err == nil {
		return &os.PathError{Op: "mkdir", Path: p, Err: os.ErrExist}
	}
	return v.fs.MkdirAll(native(p), 0755)
}

// CreateFile writes a new file and never overwrites an existing one.
func (v *FS) CreateFile(p, content string) error {
	f, err := v.fs.OpenFile(native(p), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (v *FS) Read(p string) (string, error) {
	data, err := afero.ReadFile(v.fs, native(p))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (v *FS) Rename(from, to string) error {
	return v.fs.Rename(native(from), native(to))
}
