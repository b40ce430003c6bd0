// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

// Package config loads Setlist configuration with Koanf v2.
//
// Sources are layered, highest priority last:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
//     /etc/setlist/config.yaml
//  3. Environment variables listed in envMappings
//
// Example config.yaml:
//
//	server:
//	  port: 5000
//	catalog:
//	  default_path: /data/mainSong.csv
//	feedback:
//	  backend: duckdb
//	  duckdb_path: /data/feedback.duckdb
//	recommend:
//	  retrain_on_feedback: true
package config
