// Package config loads osr settings from defaults, an optional config file
// and OSR_* environment variables, then validates them. Other packages
// receive typed sections or the converted settings they need.
package config
