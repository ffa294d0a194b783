// Package mtl rewrites a Wavefront OBJ/MTL pair so that material declarations
// in the MTL file appear in the same order as the material usages in the OBJ
// file.
//
// Every "usemtl" line in the geometry text gets its own freshly named
// "newmtl" declaration in the material text. A material referenced three
// times is emitted three times with identical bodies and distinct names
// (mat0, mat1, ...). Usage lines in the geometry text are renamed to match.
//
// The package works on in-memory byte slices only. Reading and writing files
// is left to the caller (see pkg/runner).
package mtl
