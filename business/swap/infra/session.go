// Package infra contains infrastructure adapters for the swap context.
package infra

import "github.com/avela-dev/dcavault/business/swap/app"

// StaticSession is a session fixed to one configured address. The
// engine builds transactions for this owner; signing happens outside.
type StaticSession struct {
	address string
}

// NewStaticSession creates a session for the given address. An empty
// address yields a session the orchestrator rejects with NoSession.
func NewStaticSession(address string) *StaticSession {
	return &StaticSession{address: address}
}

// Address returns the session's account address.
func (s *StaticSession) Address() string {
	return s.address
}

var _ app.Session = (*StaticSession)(nil)
