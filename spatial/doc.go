// Package spatial provides a small in-memory k-d tree over 3D points,
// used by the mesh package to find candidate vertices for
// merge_vertices_within_distance without an O(n^2) scan. It holds only
// point and record-ID pairs; the caller owns the actual records, the
// same convention the kernel's bounding-volume examples use for their
// R-Trees.
package spatial
