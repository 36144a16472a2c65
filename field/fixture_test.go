package field

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/foamio/compress"
	"github.com/arloliu/foamio/encoding"
	"github.com/arloliu/foamio/endian"
	"github.com/arloliu/foamio/format"
)

// newlineFloat encodes to eight 0x0a bytes in either byte order.
var newlineFloat = math.Float64frombits(0x0a0a0a0a0a0a0a0a)

func fileHeader(f format.FileFormat, class, object string) string {
	return fmt.Sprintf(`/*--------------------------------*- C++ -*----------------------------------*\
  =========                 |
  \\      /  F ield         | OpenFOAM: The Open Source CFD Toolbox
\*---------------------------------------------------------------------------*/
FoamFile
{
    version     2.0;
    format      %s;
    arch        "LSB;label=32;scalar=64";
    class       %s;
    location    "0";
    object      %s;
}
// * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * //

dimensions      [0 1 -1 0 0 0 0];

`, f, class, object)
}

func writeList(b *bytes.Buffer, indent, key, keyword string, f format.FileFormat, values []encoding.Value) {
	fmt.Fprintf(b, "%s%-16s nonuniform List<%s> \n%d\n", indent, key, keyword, len(values))
	if f == format.Binary {
		enc := encoding.NewNumericRawEncoder(endian.GetLittleEndianEngine(), 8)
		defer enc.Finish()
		for _, v := range values {
			enc.WriteSlice(v.Components())
		}
		b.WriteByte('(')
		b.Write(enc.Bytes())
		b.WriteString(")\n;\n")

		return
	}

	b.WriteString("(\n")
	for _, v := range values {
		b.WriteString(v.String())
		b.WriteByte('\n')
	}
	b.WriteString(")\n;\n")
}

var (
	internalValues = []encoding.Value{
		encoding.VectorValue(1, 0, 0),
		encoding.VectorValue(newlineFloat, 0.5, -2),
		encoding.VectorValue(0, 0, 1e-9),
	}
	wallValues = []encoding.Value{
		encoding.VectorValue(0, 0, 0),
		encoding.VectorValue(newlineFloat, 10, 13),
	}
)

// velocityField renders a vector field with the given body format.
func velocityField(f format.FileFormat) []byte {
	var b bytes.Buffer
	b.WriteString(fileHeader(f, "volVectorField", "U"))
	writeList(&b, "", "internalField", "vector", f, internalValues)
	b.WriteString("\nboundaryField\n{\n")
	b.WriteString("    inlet\n    {\n        type            fixedValue;\n        value           uniform (1 0 0);\n    }\n")
	b.WriteString("    outlet\n    {\n        type            zeroGradient;\n    }\n")
	b.WriteString("    walls\n    {\n        type            uniformFixedValue;\n        uniformValue    constant (0 0 0);\n")
	writeList(&b, "        ", "value", "vector", f, wallValues)
	b.WriteString("        gradient        uniform (0 0 1);\n    }\n")
	b.WriteString("    empty\n    {\n        type            fixedValue;\n        value           nonuniform List<vector> 0();\n    }\n")
	b.WriteString("}\n\n// ************************************************************************* //\n")

	return b.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func writeCompressed(t *testing.T, dir, name string, ct format.CompressionType, data []byte) string {
	t.Helper()

	codec, err := compress.GetCodec(ct)
	require.NoError(t, err)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	writeFile(t, dir, name+ct.Suffix(), compressed)

	return filepath.Join(dir, name)
}
