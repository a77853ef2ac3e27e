// Package fileutil provides atomic file replacement and backup copies used
// by the CSV export and mirror.
package fileutil
