// Package mocks provides in-memory implementations of the store interfaces
// for use in unit tests. They are not safe for concurrent use and hold no
// transactional semantics: WithTx returns the receiver unchanged.
package mocks
