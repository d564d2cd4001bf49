package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "singen"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Default directory for generated definition files and container images.
//
//	Linux:   $XDG_DATA_HOME/singen/recipes or ~/.local/share/singen/recipes
//	macOS:   ~/Library/Application Support/singen/recipes
func Recipes() string {
	return filepath.Join(xdg.DataHome, toolName, "recipes")
}

// Default directory for scratch files (partial downloads, temp recipes).
//
//	Linux:   $XDG_CACHE_HOME/singen or ~/.cache/singen
//	macOS:   ~/Library/Caches/singen
func Cache() string {
	return filepath.Join(xdg.CacheHome, toolName)
}
