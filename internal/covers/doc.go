// Package covers builds placeholder cover URLs and defines the metadata
// fetcher used to enrich new entries.
package covers
