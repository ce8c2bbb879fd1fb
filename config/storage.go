package config

import (
	"os"
	"path/filepath"

	"trimly-backend/storage"
)

// DataDir resolves the on-disk location of the blob store. TRIMLY_DATA_DIR
// overrides the default of ~/.trimly.
func DataDir() string {
	if dir := os.Getenv("TRIMLY_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trimly"
	}
	return filepath.Join(home, ".trimly")
}

func OpenStore() *storage.Store {
	return storage.Open(DataDir())
}
