// Package app wires the crlserver bootstrap together: configuration,
// logging, the game registry, the player session, playground provisioning,
// the terminal and the signal policy. It is decoupled from any specific
// entrypoint so it can be driven from tests as well as from the CLI.
package app
