// Package combat holds the pure battle rules: branch strength snapshots, the
// advantage modifier, the phase state machine and the air/surface resolvers.
// Nothing in this package performs I/O.
package combat
