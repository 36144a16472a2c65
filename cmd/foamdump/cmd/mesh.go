package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arloliu/foamio"
	"github.com/arloliu/foamio/mesh"
)

type meshReport struct {
	Dir string `yaml:"dir"`

	mesh.Stats `yaml:",inline"`

	Patch *patchReport `yaml:"patch,omitempty"`
}

type patchReport struct {
	Name  string `yaml:"name"`
	ID    int    `yaml:"id"`
	Cells []int  `yaml:"cells"`
}

// meshCmd represents the mesh command
var meshCmd = &cobra.Command{
	Use:   "mesh <dir>",
	Short: "Summarise a mesh directory",
	Long: `Load the points, faces, owner, neighbour and boundary files of a mesh
directory and print counts, patches and bounds.

Example:
  foamdump mesh cavity/constant/polyMesh
  foamdump mesh cavity/constant/polyMesh --patch movingWall`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := foamio.LoadMesh(args[0], readerOptions(cmd)...)
		if err != nil {
			return err
		}

		report := meshReport{Dir: args[0], Stats: m.Stats()}

		if name, _ := cmd.Flags().GetString("patch"); name != "" {
			p, ok := m.Patch(name)
			if !ok {
				return fmt.Errorf("mesh %s has no patch %q", args[0], name)
			}
			report.Patch = &patchReport{
				Name:  p.Name,
				ID:    p.ID,
				Cells: slices.Collect(m.FacesOfPatch(name)),
			}
		}

		return writeYAML(cmd.OutOrStdout(), report)
	},
}

func init() {
	meshCmd.Flags().String("patch", "", "List the owner cells of the faces of this patch")
	rootCmd.AddCommand(meshCmd)
}
