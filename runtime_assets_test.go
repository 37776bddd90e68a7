package schemaform

import (
	"io/fs"
	"strings"
	"testing"
)

func TestRuntimeAssetsFSContainsScripts(t *testing.T) {
	fsys := RuntimeAssetsFS()
	for name, function := range map[string]string{
		"common.js":      "function update_key(",
		"submission.js":  "function submit_form(",
		"append.js":      "function duplicate_item(",
		"collapsible.js": "function collapsible(",
	} {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			t.Fatalf("expected %s to be readable: %v", name, err)
		}
		if !strings.Contains(string(data), function) {
			t.Fatalf("expected %s to define %q", name, function)
		}
	}
}

func TestRuntimeScriptRemoveItemTakesSectionArguments(t *testing.T) {
	script, err := RuntimeScript("append.js")
	if err != nil {
		t.Fatalf("RuntimeScript() error: %v", err)
	}
	if !strings.Contains(script, "function remove_item(key_name, template_id, section_id)") {
		t.Fatalf("remove_item signature drifted from the map section markup")
	}
}

func TestRuntimeScriptsResolveNestedMapRows(t *testing.T) {
	appendScript, err := RuntimeScript("append.js")
	if err != nil {
		t.Fatalf("RuntimeScript() error: %v", err)
	}
	if !strings.Contains(appendScript, "rename_controls(node.content, renames)") {
		t.Fatalf("row duplication should rename controls inside nested templates")
	}

	submitScript, err := RuntimeScript("submission.js")
	if err != nil {
		t.Fatalf("RuntimeScript() error: %v", err)
	}
	for _, fragment := range []string{
		`last_segment(value_name).replace(/-value$/, "-key")`,
		"b.split(\".\").length - a.split(\".\").length",
	} {
		if !strings.Contains(submitScript, fragment) {
			t.Fatalf("expected submission.js to contain %q", fragment)
		}
	}
}
