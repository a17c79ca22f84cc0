// Package logstream receives UDP log datagrams from devices and renders them
// as newline-terminated text lines.
package logstream
