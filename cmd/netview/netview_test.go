package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/recipenet/internal/dataset"
	"github.com/vanshika/recipenet/internal/domain"
)

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graphs.json")
	categories := []domain.Category{{
		Key:   domain.CategoryKey{Primary: "Soup", Secondary: "Korean"},
		Nodes: []domain.Node{{ID: "garlic", Count: 10}, {ID: "onion", Count: 8}, {ID: "tofu", Count: 3}},
		Edges: []domain.Edge{
			{Source: "garlic", Target: "onion", Weight: 600},
			{Source: "garlic", Target: "tofu", Weight: 30},
		},
	}}
	require.NoError(t, dataset.WriteFile(path, categories))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("GRAPH_URI", "")
	t.Setenv("RECIPENET_CONFIG", "")

	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, "categories", "--dataset", writeDataset(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Soup (Korean)")
	assert.Contains(t, out, "Nodes")
}

func TestRenderCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "page.html")
	out, err := run(t, "render", "--dataset", writeDataset(t), "-o", output, "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 edges")

	page, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(page), "hoverNode")
}

func TestSnapshotCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "net.svg")
	_, err := run(t, "snapshot", "--dataset", writeDataset(t), "-o", output, "--hover", "tofu")
	require.NoError(t, err)

	image, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(image), "<svg"))

	_, err = run(t, "snapshot", "--dataset", writeDataset(t), "-o", filepath.Join(t.TempDir(), "net.gif"))
	assert.Error(t, err)
}

func TestHighlightCommand(t *testing.T) {
	out, err := run(t, "highlight", "--dataset", writeDataset(t), "--node", "tofu")
	require.NoError(t, err)
	assert.Contains(t, out, "emphasized: 2  dimmed: 1  neutral: 0")

	out, err = run(t, "highlight", "--dataset", writeDataset(t), "--node", "saffron")
	require.NoError(t, err)
	assert.Contains(t, out, "not visible")
	assert.Contains(t, out, "emphasized: 0  dimmed: 3")
}

func TestUnknownCategory(t *testing.T) {
	_, err := run(t, "render", "--dataset", writeDataset(t), "-c", "Salad (Thai)", "-o", filepath.Join(t.TempDir(), "x.html"))
	assert.Error(t, err)
}
