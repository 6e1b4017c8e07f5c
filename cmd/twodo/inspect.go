package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/twodo/pkg/core"
)

var inspectDiagram bool

// inspection is the JSON document printed by `twodo inspect`.
type inspection struct {
	Service   any    `json:"service"`
	StoreType string `json:"store_type"`
	Store     any    `json:"store,omitempty"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the internal state of the service and its store",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, err := workspaceRoot()
		if err != nil {
			fatal("Error", err)
		}

		store := openStore(root)
		svc := serviceFor(root, store)

		report := describe(svc, store)

		if inspectDiagram {
			config := introspection.DefaultDiagramConfig()
			config.SecondaryID = "workspace"
			config.SecondaryLabel = "Workspace Topology"
			fmt.Println(introspection.TreeDiagram(buildTree(report), config))
			return
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func describe(svc *core.Service, store core.Store) inspection {
	report := inspection{Service: svc.State(), StoreType: "unknown"}
	if comp, ok := store.(introspection.Component); ok {
		report.StoreType = comp.ComponentType()
	}
	if in, ok := store.(introspection.Introspectable); ok {
		report.Store = in.State()
	}
	return report
}

type stateNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []stateNode
}

// buildTree lays the service and its store out for the mermaid diagram.
// Status values must match classes in introspection.DefaultStyles().
func buildTree(report inspection) stateNode {
	state, _ := report.Service.(core.ServiceState)

	return stateNode{
		Name:   "Service",
		Status: "running",
		Metadata: map[string]string{
			"notes":     fmt.Sprintf("%d", state.Notes),
			"completed": fmt.Sprintf("%d", state.Completed),
			"expired":   fmt.Sprintf("%d", state.Expired),
		},
		Children: []stateNode{
			{
				Name:   "Slot",
				Status: "running",
				Metadata: map[string]string{
					"key":  cfg.Store.Key,
					"type": state.SlotType,
				},
				Children: []stateNode{
					{
						Name:     "Store",
						Status:   "running",
						Metadata: map[string]string{"type": report.StoreType},
					},
				},
			},
		},
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectDiagram, "diagram", false, "Print a mermaid diagram instead of JSON")
}
