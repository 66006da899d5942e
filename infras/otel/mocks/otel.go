package mocks

import (
	"context"
	"maps"
	"sync"

	"lodge/infras/otel"
)

// Otel is an in-memory tracer. It opens no spans and keeps what scopes report for assertions.
type Otel struct {
	mu     sync.Mutex
	spans  []string
	events []string
	errors []error
	attrs  map[string]any
}

func NewOtel() *Otel {
	return &Otel{}
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	o.mu.Lock()
	o.spans = append(o.spans, spanName)
	o.mu.Unlock()

	return ctx, &scope{otel: o}
}

func (o *Otel) Shutdown(context.Context) error {
	return nil
}

// Spans lists span names in the order they were opened.
func (o *Otel) Spans() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]string(nil), o.spans...)
}

func (o *Otel) Events() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]string(nil), o.events...)
}

// Attributes merges the attributes set on every scope. A later value for the same key wins.
func (o *Otel) Attributes() map[string]any {
	o.mu.Lock()
	defer o.mu.Unlock()

	return maps.Clone(o.attrs)
}

func (o *Otel) Errors() []error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]error(nil), o.errors...)
}

type scope struct {
	otel *Otel
}

func (s *scope) End() {}

func (s *scope) TraceError(err error) {
	if err == nil {
		return
	}

	s.otel.mu.Lock()
	s.otel.errors = append(s.otel.errors, err)
	s.otel.mu.Unlock()
}

func (s *scope) TraceIfError(err error) {
	s.TraceError(err)
}

func (s *scope) AddEvent(name string) {
	s.otel.mu.Lock()
	s.otel.events = append(s.otel.events, name)
	s.otel.mu.Unlock()
}

func (s *scope) SetAttribute(key string, value any) {
	s.otel.mu.Lock()
	defer s.otel.mu.Unlock()

	if s.otel.attrs == nil {
		s.otel.attrs = map[string]any{}
	}

	s.otel.attrs[key] = value
}

func (s *scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}
