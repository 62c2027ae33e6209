// Package config provides centralized configuration management for the
// shopmetrics pipeline. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SHOP_* for namespacing:
//
//	SHOP_SOURCES_DIR=data/ecommerce
//	SHOP_REPORTS_DIR=reports
//	SHOP_LOGGING_LEVEL=info
//	SHOP_CACHE_ENABLED=true
//	SHOP_TELEMETRY_METRICS_ENABLED=true
//
// The config file location can be overridden with SHOP_CONFIG_FILE; by
// default config.yaml and configs/config.yaml are probed.
package config
