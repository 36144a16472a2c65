package boundary

import (
	"math"

	"github.com/arloliu/foamio/format"
	"github.com/arloliu/foamio/source"
)

const header = `/*--------------------------------*- C++ -*----------------------------------*\
| =========                 |                                                 |
| \\      /  F ield         | OpenFOAM: The Open Source CFD Toolbox           |
\*---------------------------------------------------------------------------*/
FoamFile
{
    version     2.0;
    format      ascii;
    class       polyBoundaryMesh;
    location    "constant/polyMesh";
    object      boundary;
}
// * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * //

`

const meshBoundary = header + `3
(
    inlet
    {
        type            patch;
        nFaces          10;
        startFace       0;
    }
    outlet
    {
        type            patch;
        nFaces          10;
        startFace       10;
    }
    walls
    {
        type            wall;
        inGroups        List<word> 1(wall);
        nFaces          80;
        startFace       20;
    }
)

// ************************************************************************* //
`

const fieldBoundary = header + `dimensions      [0 1 -1 0 0 0 0];

internalField   uniform (0 0 0);

boundaryField
{
    inlet
    {
        type            fixedValue;
        value           uniform (1 0 0);
    }

    outlet
    {
        type            zeroGradient;
    }
    walls
    {
        type            noSlip;
    }
}

// ************************************************************************* //
`

func newContent(text string) *source.Content {
	return source.NewContent("constant/polyMesh/boundary", format.CompressionNone, []byte(text))
}

func mathFromBits(b uint64) float64 {
	return math.Float64frombits(b)
}
