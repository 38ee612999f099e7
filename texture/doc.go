// Package texture implements the bidirectional link between a face's
// world-space projection parameters (U/V axes, scale, offset) and its
// per-corner UV coordinates: coords_from_params, params_from_coords,
// the fixed-orientation box-mapping helpers (align to grid/face), UV
// justification against a texture tile, and the averaging helpers used
// to stitch seams. It works over plain vecmath types and caller-
// supplied corner positions/UVs — mesh.Mesh is the only caller that
// threads it through live face data.
package texture
