// Package config provides configuration loading for the axon server.
//
// Configuration is read from an optional axon.toml file and from
// AXON_-prefixed environment variables, with environment taking
// precedence. The file is looked up in the working directory unless
// AXON_CONFIG points at an explicit path.
//
// # Configuration File Structure
//
//	[server]
//	address = ":8420"
//	title = "Axon"
//
//	[store]
//	backend = "sqlite"   # memory, file, or sqlite
//	path = "axon.db"
//
//	[log]
//	level = "info"       # debug, info, warn, or error
//	format = "text"      # text or json
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	logger := config.NewLogger(cfg.Log)
package config
