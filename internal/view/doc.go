// Package view derives what the diary shows from a collection snapshot.
//
// Project is a pure function of a snapshot and an explicit State: the view
// kind, filters, sort key, and search term. It never mutates its input and
// keeps no cache, so identical inputs always yield identical output. Sorting
// is stable on top of newest-first order, and entries missing the sort field
// are placed last regardless of direction.
package view
