// File: cmd/inspect.go
package cmd

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/formeset/platen/layout"
)

// regionJSON is the wire form of a resolved region. Width and height are
// redundant but save the reader the subtraction.
type regionJSON struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// regionNode is one element of the inspect dump: its resolved pixel region
// and the resolved subtree inside it.
type regionNode struct {
	Region   regionJSON   `json:"region"`
	DPI      float64      `json:"dpi,omitempty"`
	Children []regionNode `json:"children,omitempty"`
}

type inspectDump struct {
	Document string       `json:"document"`
	Pages    []regionNode `json:"pages"`
}

// newInspectCmd creates the `inspect` command, the debug surface for
// placement questions: it lays the document out without drawing anything
// and prints the absolute region of every element.
func newInspectCmd() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect [document]",
		Short: "Resolves a document and dumps its region tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := activeConfig()

			build, err := loadDocument(args[0], cfg)
			if err != nil {
				return err
			}

			dump := inspectDump{Document: args[0]}
			for i, page := range build.Pages {
				node, err := resolveTree(page.Element)
				if err != nil {
					return fmt.Errorf("page %d: %w", i+1, err)
				}
				dump.Pages = append(dump.Pages, node)
			}

			data, err := json.MarshalIndent(dump, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	return inspectCmd
}

// resolveTree resolves el and its whole subtree into absolute regions.
func resolveTree(el *layout.Element) (regionNode, error) {
	region, err := el.GetAbsoluteRegion()
	if err != nil {
		return regionNode{}, err
	}
	node := regionNode{
		Region: regionJSON{
			Left:   region.Left,
			Top:    region.Top,
			Right:  region.Right,
			Bottom: region.Bottom,
			Width:  region.Width(),
			Height: region.Height(),
		},
		DPI: el.DPI(),
	}
	for _, child := range el.Children() {
		childNode, err := resolveTree(child)
		if err != nil {
			return regionNode{}, err
		}
		node.Children = append(node.Children, childNode)
	}
	return node, nil
}
