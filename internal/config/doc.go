// Package config loads the settings of the inkwell editing core.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Environment Variables   │  ← INKWELL_EDITOR_TAB_WIDTH=8
//	├─────────────────────────────┤
//	│  3. YAML file               │  ← ~/.config/inkwell/config.yaml
//	├─────────────────────────────┤
//	│  2. TOML file               │  ← ~/.config/inkwell/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Each layer is read into a map by the loader sub-package, merged, then
// decoded into a Config and validated. The watcher sub-package reports
// changes to the files so a Loader can reload them.
//
// # Usage
//
//	cfg, err := config.NewLoader(config.WithFiles(config.DefaultFiles()...)).Load()
//	if err != nil {
//	    return err
//	}
//	e := engine.New(cfg.EngineOptions()...)
package config
