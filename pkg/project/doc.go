// Package project generates an Android project tree.
//
// Generate runs a fixed sequence against a destination filesystem and a
// template set: refuse an existing directory, materialize the root
// templates, the app build file, the source package with its layer
// directories, the Kotlin sources and manifest, the resources, the ignore
// files, and finally verify the result. Any failure aborts the sequence and
// leaves whatever was already written in place.
package project
