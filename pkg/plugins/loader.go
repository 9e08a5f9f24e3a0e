package plugins

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/metadata"
)

// Loader discovers installed plugins by scanning directories for
// subdirectories that carry a metadata.txt descriptor.
type Loader struct {
	pluginDirs []string
	log        *logrus.Logger
}

// NewLoader creates a new plugin loader.
func NewLoader(dirs []string, log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.New()
	}
	return &Loader{
		pluginDirs: dirs,
		log:        log,
	}
}

// DiscoverPlugins scans the configured directories and returns every plugin
// whose descriptor parses. Plugins with invalid descriptors are still
// returned, carrying their validation result, so callers can surface them;
// directories with unreadable or syntactically broken descriptors are
// skipped with a warning.
func (l *Loader) DiscoverPlugins(ctx context.Context) ([]*Plugin, error) {
	var found []*Plugin

	for _, dir := range l.pluginDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, err := os.Stat(dir); os.IsNotExist(err) {
			l.log.Debugf("Plugin directory does not exist: %s", dir)
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			l.log.Warnf("Failed to read plugin directory %s: %v", dir, err)
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			pluginDir := filepath.Join(dir, entry.Name())
			plugin, err := l.LoadPlugin(ctx, pluginDir)
			if err != nil {
				l.log.Warnf("Failed to load plugin from %s: %v", pluginDir, err)
				continue
			}

			found = append(found, plugin)
		}
	}

	return found, nil
}

// LoadPlugin loads and validates the descriptor in a single plugin directory.
func (l *Loader) LoadPlugin(ctx context.Context, dir string) (*Plugin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	descriptorPath := filepath.Join(dir, metadata.DescriptorFileName)
	if _, err := os.Stat(descriptorPath); err != nil {
		return nil, fmt.Errorf("no descriptor in %s: %w", dir, err)
	}

	d, err := metadata.ParseFile(descriptorPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse descriptor: %w", err)
	}

	plugin := &Plugin{
		Descriptor: d,
		Validation: metadata.Validate(d),
		Dir:        dir,
		LoadedAt:   time.Now().UTC(),
	}

	if !plugin.Validation.Valid {
		l.log.Warnf("Plugin %s has %d descriptor errors", dir, len(plugin.Validation.Errors))
	} else {
		l.log.Infof("Loaded plugin: %s v%s", d.Name, d.Version)
	}

	return plugin, nil
}
