// Package memdom is an in-memory implementation of the host boundary.
//
// It backs two things: unit tests that need a real tree to patch and
// inspect, and the live transport, which mirrors a memdom tree to a browser
// over a websocket. Dispatch simulates user interaction the way a browser
// would deliver it, including updating the live value/checked properties
// before handlers run.
//
// A document and its nodes are not safe for concurrent use. Each live
// session owns one document and serializes access on its event loop; tests
// are single-goroutine by nature.
package memdom
