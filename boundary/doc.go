// Package boundary parses the patch blocks of mesh boundary files and of the
// boundaryField section of field files.
//
// Both share one layout, a sequence of named blocks inside an outer delimited
// region:
//
//	boundaryField          3
//	{                      (
//	    inlet                  inlet
//	    {                      {
//	        type fixedValue;       type patch;
//	        value uniform 1;       nFaces 10;
//	    }                          startFace 0;
//	}                          }
//	                       )
//
// The field file variant (left) yields the line span of every patch block; the
// mesh variant (right) yields a Table of patches with their face ranges.
//
// Patches receive ids FirstPatchID, FirstPatchID-1, ... in declaration order.
// The ids are negative so they never collide with a cell index.
package boundary
