// Package config provides a read-only nested configuration map with
// dotted-path lookup.
//
// Configuration is loaded once at boot, either from a YAML document or from a
// map literal, and queried with typed accessors:
//
//	cfg, err := config.LoadFile("frontman.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if cfg.BoolOr("routes.disable.feed", true) {
//	    // feed archives answer with 404
//	}
//
// The *Or accessors never fail: a missing key or a value of the wrong type
// yields the provided default. Use the error-returning accessors when a key
// is required.
//
// Config performs no mutation after construction and is safe for concurrent
// reads.
package config
