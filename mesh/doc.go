// Package mesh reads polyhedral mesh directories and answers connectivity
// queries.
//
// A mesh directory holds five files: points (vertex coordinates), faces
// (vertex indices per face), owner (the cell owning each face), neighbour (the
// cell across each interior face) and boundary (the patch table). Interior
// faces come first; boundary faces follow, grouped by patch.
//
// Load builds the per-cell face and neighbour lists:
//
//	m, err := mesh.Load("case/constant/polyMesh")
//	if err != nil {
//		return err
//	}
//	for cell := range m.FacesOfPatch("inlet") {
//		fmt.Println(cell, m.IsCellOnBoundary(cell))
//	}
//
// Boundary faces carry the id of their patch in place of a neighbour cell, so a
// CellRef is either a cell index or a negative patch id.
package mesh
