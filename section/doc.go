// Package section interprets the text header at the top of every mesh and
// field file.
//
// The header is a "FoamFile" dictionary:
//
//	FoamFile
//	{
//	    version     2.0;
//	    format      binary;
//	    arch        "LSB;label=32;scalar=64";
//	    class       volVectorField;
//	    object      U;
//	}
//
// Only a bounded prefix of the file is searched. The body format defaults to
// ASCII when no "format" entry appears in that prefix; binary bodies default to
// the native byte order with 4-byte labels and 8-byte scalars unless "arch" says
// otherwise.
package section
