package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/internal/config"
	"github.com/goliatone/go-schemaform/pkg/renderers/tui"
)

const personSchema = `{
  "title": "Person",
  "type": "object",
  "required": ["nick"],
  "properties": {
    "nick": {"type": "string", "description": "what friends call you"},
    "home": {"$ref": "#/$defs/Address"}
  },
  "$defs": {
    "Address": {
      "type": "object",
      "properties": {"street": {"type": "string"}}
    }
  }
}`

const loopSchema = `{
  "title": "Chain",
  "type": "object",
  "properties": {
    "head": {"$ref": "#/$defs/Node"},
    "rows": {"type": "array", "items": {"$ref": "#/$defs/Node"}}
  },
  "$defs": {
    "Node": {
      "type": "object",
      "properties": {
        "value": {"type": "string"},
        "next": {"$ref": "#/$defs/Node"}
      }
    }
  }
}`

type scriptedDriver struct {
	inputs []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	value := d.inputs[0]
	d.inputs = d.inputs[1:]
	return value, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return 0, nil
}

func (d *scriptedDriver) Info(context.Context, string) error {
	return nil
}

func writeSchema(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
}

func execute(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()
	isolateHome(t)
	if a == nil {
		a = &app{v: config.New(), logger: zap.NewNop()}
	}
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestRecordsListsCatalog(t *testing.T) {
	path := writeSchema(t, "person.schema.json", personSchema)

	out, err := execute(t, nil, "", "records", "--schema", path)
	require.NoError(t, err)
	assert.Equal(t, "Person\nAddress\n", out)
}

func TestRenderWritesFormToStdout(t *testing.T) {
	path := writeSchema(t, "person.schema.json", personSchema)

	out, err := execute(t, nil, "", "render", "--schema", path, "--record", "Person", "--uri", "/people")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<form "), "unexpected output %q", out)
	assert.Contains(t, out, "name='nick'")
	assert.Contains(t, out, "value='/people'")
	assert.NotContains(t, out, "<!DOCTYPE html>")
}

func TestRenderPageToFile(t *testing.T) {
	path := writeSchema(t, "person.schema.json", personSchema)
	target := filepath.Join(t.TempDir(), "form.html")

	out, err := execute(t, nil, "", "render", "--schema", path, "--record", "Person", "--page", "--title", "Join", "--out", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
	assert.Contains(t, string(data), "<title>Join</title>")
	assert.Contains(t, string(data), "function submit_form(")
}

func TestRenderReadsSchemaFromStdin(t *testing.T) {
	out, err := execute(t, nil, `{"title":"Note","type":"object","properties":{"body":{"type":"string"}}}`, "render", "--schema", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "name='body'")
}

func TestRenderRequiresRecordForMultiRecordDocuments(t *testing.T) {
	path := writeSchema(t, "person.schema.json", personSchema)

	_, err := execute(t, nil, "", "render", "--schema", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Address, Person")
}

func TestMissingSchemaFails(t *testing.T) {
	_, err := execute(t, nil, "", "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--schema")
}

func TestConfigFileSuppliesSchema(t *testing.T) {
	path := writeSchema(t, "person.schema.json", personSchema)
	cfg := writeSchema(t, "schemaform.yaml", "schema: "+path+"\nrecord: Address\n")

	out, err := execute(t, nil, "", "render", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "name='street'")
	assert.NotContains(t, out, "name='nick'")
}

func TestInspectPrintsDescriptorTable(t *testing.T) {
	path := writeSchema(t, "person.schema.json", personSchema)

	out, err := execute(t, nil, "", "inspect", "--schema", path, "--record", "Person")
	require.NoError(t, err)
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "PLACEHOLDER")
	assert.Contains(t, out, "home.street")
	assert.Contains(t, out, "what friends call you")

	var homeRow string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, " home ") {
			homeRow = line
		}
	}
	require.NotEmpty(t, homeRow, "missing home row in\n%s", out)
	assert.Contains(t, homeRow, "record")
	assert.Contains(t, homeRow, "Address")
}

func TestLintReportsIssuesAndFails(t *testing.T) {
	path := writeSchema(t, "chain.schema.json", loopSchema)

	out, err := execute(t, nil, "", "lint", "--schema", path, "--record", "Chain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issue(s) found")
	assert.Contains(t, out, "Chain:")
	assert.Contains(t, out, "rows")
}

func TestLintCleanRecordPasses(t *testing.T) {
	path := writeSchema(t, "person.schema.json", personSchema)

	out, err := execute(t, nil, "", "lint", "--schema", path)
	require.NoError(t, err)
	assert.Equal(t, "Person: ok\nAddress: ok\n", out)
}

func TestFillPrintsCollectedValues(t *testing.T) {
	path := writeSchema(t, "note.schema.json", `{"title":"Note","type":"object","properties":{"body":{"type":"string"}}}`)
	a := &app{v: config.New(), logger: zap.NewNop(), promptDriver: &scriptedDriver{inputs: []string{"hello"}}}

	out, err := execute(t, a, "", "fill", "--schema", path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"body\": \"hello\"\n}\n", out)
}

func TestLintJSONReport(t *testing.T) {
	path := writeSchema(t, "chain.schema.json", loopSchema)

	out, err := execute(t, nil, "", "lint", "--schema", path, "--record", "Chain", "--output", "json")
	require.Error(t, err)
	assert.Contains(t, out, `"valid": false`)
	assert.Contains(t, out, `"kind": "list-element"`)
	assert.Contains(t, out, `"kind": "cycle"`)
}
