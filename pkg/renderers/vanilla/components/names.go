package components

// Client script names shipped with the runtime assets. The form markup calls
// into these by function name: submit_form, duplicate_item, remove_item and
// collapsible.
const (
	ScriptCommon      = "common.js"
	ScriptSubmission  = "submission.js"
	ScriptAppend      = "append.js"
	ScriptCollapsible = "collapsible.js"
)

// Markup emitted in place of unsupported container slots.
const (
	errorMarkerList = "list"
	errorMarkerDict = "dict"
)
