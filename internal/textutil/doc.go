// Package textutil compares short titles by token overlap.
//
// Titles are case folded, split on anything that is not a letter or digit,
// and turned into term-frequency fingerprints. CosineSimilarity then scores
// two fingerprints between 0 and 1; the diary uses it to flag likely
// duplicate entries when something new is added.
package textutil
