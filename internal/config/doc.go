// Package config manages user-level settings stored at ~/.shipgen/config.yaml,
// such as the directory scanned for projects when none is given on the
// command line.
package config
