package main

import (
	"context"

	"vlcrc/internal/config"
	"vlcrc/internal/log"
	"vlcrc/internal/tui"
	"vlcrc/internal/watch"
)

// loadReload rebuilds the key table from the config file at path.
func loadReload(path string) (tui.Reload, error) {
	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		return tui.Reload{}, err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return tui.Reload{}, err
	}
	return tui.Reload{Registry: registry, Toggles: cfg.ToggleSpecs()}, nil
}

// reloadLoop turns config file changes into key tables for the
// dispatcher. Only the newest table is kept pending; a file that fails
// to load is logged and the current table stays.
func reloadLoop(ctx context.Context, changes <-chan watch.ConfigChange, load func(string) (tui.Reload, error)) <-chan tui.Reload {
	out := make(chan tui.Reload, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case change, ok := <-changes:
				if !ok {
					return
				}
				r, err := load(change.Path)
				if err != nil {
					log.LogError(err, "Config reload failed")
					continue
				}
				select {
				case <-out:
				default:
				}
				out <- r
				log.LogWithFields(log.F("file", change.Path)).Info("Config reloaded")
			}
		}
	}()
	return out
}
