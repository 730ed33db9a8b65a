// Package network provides the HTTP clients shared across the application.
package network

import (
	"net/http"
	"time"
)

// Client is the short-lived request client used for metadata and release checks.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// Streaming is used for response bodies that are read for as long as a tile lives,
// so it has no overall timeout, only a bound on waiting for headers.
var Streaming = &http.Client{
	Transport: NewFingerprintTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
