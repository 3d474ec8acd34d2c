// Package settings persists PluginSettings in the host key-value store.
package settings

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/vault"
)

const keyPrefix = "plugin-settings:"

// Store is the subset of store.KV used here.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Renamer renames folders inside the vault.
type Renamer interface {
	RenameRoot(oldName, newName string) error
	RenameSubfolder(parent, oldName, newName string) error
}

// Key returns the store key for the vault at vaultPath.
func Key(vaultPath string) string {
	return keyPrefix + vaultPath
}

// Load returns the stored settings. Fields missing from the stored object
// keep their defaults.
func Load(kv Store, key string) (models.PluginSettings, error) {
	s := models.DefaultPluginSettings()
	data, ok, err := kv.Get(key)
	if err != nil {
		return s, fmt.Errorf("failed to load settings: %w", err)
	}
	if !ok {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return models.DefaultPluginSettings(), fmt.Errorf("failed to decode settings: %w", err)
	}
	if s.RootPath == "" {
		s.RootPath = models.DefaultRootPath
	}
	return s, nil
}

// Save writes s under key.
func Save(kv Store, key string, s models.PluginSettings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := kv.Put(key, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Apply renames the root folder on disk when the configured root path
// changes from oldRoot to newRoot. Nested roots are renamed within their
// parent; moving the root to another parent is not supported.
func Apply(r Renamer, oldRoot, newRoot string) error {
	oldRoot, newRoot = vault.Join(oldRoot), vault.Join(newRoot)
	if oldRoot == newRoot || newRoot == "" {
		return nil
	}
	oldDir, newDir := path.Dir(oldRoot), path.Dir(newRoot)
	if oldDir != newDir {
		return fmt.Errorf("cannot move root from '%s' to '%s': parent folders differ", oldDir, newDir)
	}
	if oldDir == "." {
		return r.RenameRoot(oldRoot, newRoot)
	}
	return r.RenameSubfolder(oldDir, path.Base(oldRoot), path.Base(newRoot))
}
