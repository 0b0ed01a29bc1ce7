package cmd

import (
	"github.com/df07/go-tile-tracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Group", "ID", "Name", "Description"})
	for _, group := range scene.ListSceneGroups() {
		for _, info := range group.Scenes {
			table.Append([]string{group.Name, info.ID, info.DisplayName, info.Description})
		}
	}
	table.Render()
	return nil
}
