// Package formats provides parsers for 3D model file formats.
//
// Only a subset of Wavefront OBJ is read: vertex positions, object markers
// and, when asked for, polyline elements. Faces, normals and texture
// coordinates are skipped.
package formats
