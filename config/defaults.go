// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and app configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"defaultApp":  "codeview",
		"activeTheme": "mocha",
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "codeview":
		cfg.RegisterDefaults("codeview", Section{
			"chroma_style": "catppuccin-mocha",
			"tab_width":    4,
			// 0 means detect the indent unit from the file.
			"indent_width": 0,
		})
		cfg.RegisterDefaults("codeview.scrollbar", Section{
			"auto_hide_ms": 1500,
		})
		cfg.RegisterDefaults("codeview.indent_guides", Section{
			"enabled": true,
		})
	}
}

func defaultSystemConfig() Config {
	cfg := make(Config)
	applySystemDefaults(cfg)
	return cfg
}

func defaultAppConfig(app string) Config {
	cfg := make(Config)
	applyAppDefaults(app, cfg)
	if len(cfg) == 0 {
		return nil
	}
	return cfg
}
