// Package node wires the six pipeline operators into a participant of the
// OMEGA network.
//
// A node owns one local resonance frequency, an epoch counter for masking key
// rotation, and a transport. Sending runs the forward pipeline (mask,
// vectorize, stamp, sweep, project, recombine, kick) and hands the result to
// the transport; receiving polls the transport, re-projects, tests resonance
// against the local frequency and unmasks on a match. A non-resonant vector
// is dropped silently: not hearing a message is the normal case on a shared
// medium, not an error.
package node
