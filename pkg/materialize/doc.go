// Package materialize turns a template tree into files on a destination
// filesystem.
//
// List enumerates one level of a template directory. CopyTree copies a
// subtree byte for byte, Render runs one file through the template engine
// and Chmod applies a best-effort mode change whose failure is reported,
// never raised.
package materialize
