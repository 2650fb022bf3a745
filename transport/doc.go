// Package transport carries pipeline vectors between nodes.
//
// Two implementations are provided: MemoryBuffer, an in-process buffer for
// tests and single-process simulations, and RelayClient, an HTTP client for a
// relay service. Both satisfy the omega.Transport interface, and neither
// inspects vector content; transports move opaque vectors and nothing else.
package transport
