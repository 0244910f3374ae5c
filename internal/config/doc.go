// Package config provides configuration structures and utilities for
// WaybackCrawl. It defines the scan options populated from CLI flags,
// the optional YAML configuration file, and validation sentinels.
package config
