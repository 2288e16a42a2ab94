// Package fileutil holds small file helpers shared by the app list writer and
// the CLI.
package fileutil
