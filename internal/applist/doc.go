// Package applist reads and writes the application lists consumed by batch
// cover resolution.
//
// A list is either a bare array of records or an object whose "apps" key holds
// the array (the layout of a streaming host's apps.json); other top-level keys
// are carried through untouched. Records are free-form objects: only "name"
// is read and only "image-path" is written. JSON and YAML are both accepted.
package applist
