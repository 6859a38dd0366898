// Package config loads the server configuration.
//
// Values come from three layers, later ones winning: the built-in defaults,
// an optional HCL file, and CRLSERVER_* environment variables. The HCL file
// is evaluated with an `env` object holding the process environment, so
// paths can be written relative to the invoking user:
//
//	playground_dir = "${env.HOME}/crl/playground"
package config
