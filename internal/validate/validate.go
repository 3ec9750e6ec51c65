// SPDX-License-Identifier: MIT

// Package validate accumulates field validation errors so that a whole
// configuration can be reported at once.
package validate

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strings"
	"time"
)

// Error is one rejected field.
type Error struct {
	Field   string
	Value   any
	Message string
}

func (e Error) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError is the error returned by Validator.Err. It lists every
// rejected field in the order the checks ran.
type ValidationError struct {
	errs []Error
}

// Errors returns the rejected fields.
func (e ValidationError) Errors() []Error { return e.errs }

func (e ValidationError) Error() string {
	msgs := make([]string, len(e.errs))
	for i, fe := range e.errs {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validator collects field errors. The zero value is ready to use.
type Validator struct {
	errs []Error
}

// New returns an empty Validator.
func New() *Validator { return &Validator{} }

// AddError records a failed check of field.
func (v *Validator) AddError(field, message string, value any) {
	v.errs = append(v.errs, Error{Field: field, Value: value, Message: message})
}

// IsValid reports whether no check failed so far.
func (v *Validator) IsValid() bool { return len(v.errs) == 0 }

// Errors returns the failed checks so far.
func (v *Validator) Errors() []Error { return v.errs }

// Err returns nil or a ValidationError holding a copy of the failed checks.
func (v *Validator) Err() error {
	if v.IsValid() {
		return nil
	}
	return ValidationError{errs: slices.Clone(v.errs)}
}

// Range checks minVal <= value <= maxVal.
func (v *Validator) Range(field string, value, minVal, maxVal int) {
	if value < minVal || value > maxVal {
		v.AddError(field, fmt.Sprintf("must be in [%d, %d], got %d", minVal, maxVal, value), value)
	}
}

// RangeFloat checks minVal <= value <= maxVal.
func (v *Validator) RangeFloat(field string, value, minVal, maxVal float64) {
	if value < minVal || value > maxVal {
		v.AddError(field, fmt.Sprintf("must be in [%g, %g], got %g", minVal, maxVal, value), value)
	}
}

func (v *Validator) Positive(field string, value int64) {
	if value <= 0 {
		v.AddError(field, fmt.Sprintf("must be positive, got %d", value), value)
	}
}

func (v *Validator) PositiveDuration(field string, d time.Duration) {
	if d <= 0 {
		v.AddError(field, fmt.Sprintf("must be a positive duration, got %s", d), d)
	}
}

// NotEmpty rejects empty and whitespace-only strings.
func (v *Validator) NotEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "must not be empty", value)
	}
}

func (v *Validator) OneOf(field, value string, allowed []string) {
	if !slices.Contains(allowed, value) {
		v.AddError(field, fmt.Sprintf("must be one of %s, got %q", strings.Join(allowed, ", "), value), value)
	}
}

// ListenAddr checks a host:port pair with a non-empty port. The host may be
// empty to listen on all interfaces.
func (v *Validator) ListenAddr(field, addr string) {
	_, port, err := net.SplitHostPort(addr)
	switch {
	case err != nil:
		v.AddError(field, fmt.Sprintf("invalid listen address: %v", err), addr)
	case port == "":
		v.AddError(field, "listen address needs a port", addr)
	}
}

// Endpoint accepts an OTLP collector given as host:port or as an http(s)
// URL with a host.
func (v *Validator) Endpoint(field, value string) {
	if !strings.Contains(value, "://") {
		if _, _, err := net.SplitHostPort(value); err != nil {
			v.AddError(field, fmt.Sprintf("must be host:port or an http(s) URL: %v", err), value)
		}
		return
	}
	u, err := url.Parse(value)
	switch {
	case err != nil:
		v.AddError(field, fmt.Sprintf("invalid URL: %v", err), value)
	case u.Scheme != "http" && u.Scheme != "https":
		v.AddError(field, fmt.Sprintf("unsupported URL scheme %q", u.Scheme), value)
	case u.Host == "":
		v.AddError(field, "URL needs a host", value)
	}
}
