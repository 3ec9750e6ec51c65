// SPDX-License-Identifier: MIT

// Package middleware provides the HTTP middleware stack of the conversion
// service.
package middleware
