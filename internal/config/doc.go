// Package config loads and validates scraper settings.
//
// Settings live in a YAML file so a session can be restarted with the same
// URL, interval and output file:
//
//	url: https://www.tippmixpro.hu/i/sportfogadas/labdarugas/all
//	interval_seconds: 30
//	output_file: scraped_data.json
//	load_timeout: 30s
//	wait_timeout: 5s
//	metrics_addr: ":9090"
//
// ${VAR} references are expanded from the environment before parsing.
package config
