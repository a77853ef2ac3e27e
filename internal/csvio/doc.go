// Package csvio reads and writes the flat CSV form of the diary.
//
// The column order is fixed by Header. Export and the persistence mirror
// write through Encode; Import reads through Decode, which tolerates header
// case differences and reports bad rows by line number instead of failing
// the whole file.
package csvio
