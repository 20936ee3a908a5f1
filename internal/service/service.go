// Package service implements the nine public operations of the launchpad as
// atomic database transactions: submit, back, withdraw, finalize, fail, buy,
// sell, claim and migrate. Every operation validates before it moves funds
// and commits reserve state and transfers together or not at all.
package service

import (
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventPublisher receives engine events. pkg/config.Publisher satisfies it
// for RabbitMQ; the websocket hub satisfies it for live clients.
type EventPublisher interface {
	Publish(queue string, message interface{}) error
}

// Service owns the launchpad state machine.
type Service struct {
	db     *gorm.DB
	events []EventPublisher
	now    func() time.Time
}

type Option func(*Service)

// WithEvents attaches an event sink. May be called multiple times.
func WithEvents(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.events = append(s.events, p)
		}
	}
}

// WithClock overrides the wall clock, for tests and replay.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish fans an event out to all sinks. Event delivery is best-effort and
// happens after commit; a failed sink never rolls back a settled operation.
func (s *Service) publish(queue string, message interface{}) {
	for _, p := range s.events {
		if err := p.Publish(queue, message); err != nil {
			logger.Errorf("publish %s event failed: %v", queue, err)
		}
	}
}
