package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/df07/go-stream-raytracer/pkg/scene"
	"github.com/df07/go-stream-raytracer/pkg/shader"
	"github.com/df07/go-stream-raytracer/pkg/simd"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListRenderers prints the registered renderers.
func ListRenderers(ctx *cli.Context) error {
	setupLogging(ctx)

	table, err := renderersTable()
	if err != nil {
		return err
	}
	logger.Noticef("available renderers\n%s", table)
	return nil
}

func renderersTable() (string, error) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Aliases", "Mode", "Description"})
	for _, name := range shader.Names() {
		info, err := shader.Lookup(name)
		if err != nil {
			return "", err
		}
		mode := "scalar"
		if info.Stream {
			mode = "stream"
		}
		table.Append([]string{
			info.Name,
			strings.Join(info.Aliases, ", "),
			mode,
			info.Description,
		})
	}
	table.Render()
	return buf.String(), nil
}

// ListScenes prints the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)
	logger.Noticef("available scenes\n%s", scenesTable())
	return nil
}

func scenesTable() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Volume", "Description"})
	for _, info := range scene.ListScenes() {
		table.Append([]string{
			info.ID,
			info.DisplayName,
			fmt.Sprintf("%t", info.Volume),
			info.Description,
		})
	}
	table.Render()
	return buf.String()
}

// CPUInfo prints the detected SIMD backend and the lane width used by stream renderers.
func CPUInfo(ctx *cli.Context) error {
	setupLogging(ctx)
	logger.Noticef("cpu features\n%s", cpuTable(simd.HostFeatures()))
	return nil
}

func cpuTable(f simd.Features) string {
	backend := simd.SelectBackend(f)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Feature", "Present"})
	table.Append([]string{"AVX-512F", fmt.Sprintf("%t", f.AVX512F)})
	table.Append([]string{"AVX2", fmt.Sprintf("%t", f.AVX2)})
	table.Append([]string{"AVX", fmt.Sprintf("%t", f.AVX)})
	table.Append([]string{"SSE4.1", fmt.Sprintf("%t", f.SSE41)})
	table.Append([]string{"SSE2", fmt.Sprintf("%t", f.SSE2)})
	table.Append([]string{"ASIMD", fmt.Sprintf("%t", f.ASIMD)})
	table.SetFooter([]string{backend.String(), fmt.Sprintf("%d lanes", backend.Lanes())})
	table.Render()
	return buf.String()
}
