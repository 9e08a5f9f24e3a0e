package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/metadata"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/plugins"
)

func main() {
	// Parse command line flags
	pluginDirs := flag.String("plugin-dirs", "", "Colon-separated plugin directories to watch")
	flag.Parse()

	dirs := splitDirs(*pluginDirs)
	if len(dirs) == 0 {
		log.Fatal("No plugin directories given, use -plugin-dirs")
	}

	logger := logrus.New()
	registry := plugins.NewRegistry()
	loader := plugins.NewLoader(dirs, logger)

	ctx := context.Background()

	// Initial discovery
	discovered, err := loader.DiscoverPlugins(ctx)
	if err != nil {
		log.Fatalf("Plugin discovery failed: %v", err)
	}
	for _, p := range discovered {
		if err := registry.Register(p); err != nil {
			log.Printf("Failed to register plugin from %s: %v", p.Dir, err)
		}
	}
	log.Printf("Registered %d plugins", registry.Count())

	// Create watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := setupWatcher(watcher, dir); err != nil {
			log.Fatalf("Failed to watch %s: %v", dir, err)
		}
	}

	// Process events
	log.Printf("Watching %d directories for descriptor changes", len(dirs))
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Only care about metadata.txt writes, creates, and removals
			if filepath.Base(event.Name) == metadata.DescriptorFileName {
				pluginDir := filepath.Dir(event.Name)

				if event.Op&fsnotify.Remove != 0 {
					unregisterDir(registry, pluginDir)
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					reload(ctx, loader, registry, pluginDir)
				}
				continue
			}

			// Watch new plugin directories as they appear
			if event.Op&fsnotify.Create != 0 {
				fi, err := os.Stat(event.Name)
				if err == nil && fi.IsDir() {
					log.Printf("New directory: %s", event.Name)
					if err := watcher.Add(event.Name); err != nil {
						log.Printf("Error watching new directory: %v", err)
					}
					reload(ctx, loader, registry, event.Name)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// reload re-reads one plugin directory's descriptor and re-registers it.
func reload(ctx context.Context, loader *plugins.Loader, registry *plugins.Registry, dir string) {
	plugin, err := loader.LoadPlugin(ctx, dir)
	if err != nil {
		log.Printf("Failed to reload %s: %v", dir, err)
		return
	}

	if err := registry.Register(plugin); err != nil {
		log.Printf("Failed to register %s: %v", dir, err)
		return
	}

	if plugin.Validation != nil && !plugin.Validation.Valid {
		log.Printf("Reloaded %s with %d validation errors", plugin.Name(), len(plugin.Validation.Errors))
	} else {
		log.Printf("Reloaded %s", plugin.Name())
	}
}

// unregisterDir drops whichever plugin was loaded from dir.
func unregisterDir(registry *plugins.Registry, dir string) {
	for _, p := range registry.List(plugins.ListFilter{}) {
		if p.Dir == dir {
			if err := registry.Unregister(p.Name()); err != nil {
				log.Printf("Failed to unregister %s: %v", p.Name(), err)
				return
			}
			log.Printf("Unregistered %s (descriptor removed)", p.Name())
			return
		}
	}
}

// setupWatcher adds the root and its immediate plugin subdirectories.
func setupWatcher(watcher *fsnotify.Watcher, root string) error {
	if err := watcher.Add(root); err != nil {
		return err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := watcher.Add(filepath.Join(root, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitDirs(v string) []string {
	var out []string
	for _, d := range strings.Split(v, string(os.PathListSeparator)) {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}
