// Package filesystem provides the destination filesystem used when
// generating a project.
//
// Generation writes through the FS interface so the same code path can
// target the real disk, an in-memory afero filesystem in tests, or a
// copy-on-write overlay for dry runs.
package filesystem
