// Package constants provides shared constants used throughout cortex2jstore:
// default file locations, file permissions and the field names of the
// Vanderbilt Cortex and JStore exports.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default locations used by the run command.
const (
	DefaultCortexPath = "data/cortex.csv"
	DefaultJStorePath = "data/jstore.xlsx"
	DefaultOutputDir  = "output"
	DefaultFinalPath  = DefaultOutputDir + "/finaljstore.json"
)

// Join keys of the two exports.
const (
	CortexKeyField = "Original File Name"
	JStoreKeyField = "Filename"
)

// JStore schema fields with special handling.
const (
	JStoreTitleField         = "Title[2071407]"
	JStoreDescriptionField   = "Description[2071422]"
	JStorePeopleField        = "Vanderbilt People[2083840]"
	JStoreLocalSubjectsField = "Vanderbilt Local Subjects[2083876]"
)

// Cortex fields feeding the JStore schema.
const (
	CortexTitleField       = "Title"
	CortexDescriptionField = "Description / Data"
)

// Delimiters.
const (
	// ValueDelimiter separates the values of a multi-valued JStore field.
	ValueDelimiter = "|"

	// CortexQualifierDelimiter separates a Cortex header from its internal
	// qualifier, e.g. "Title|CoreField.Title".
	CortexQualifierDelimiter = "|"
)

// LocalSubjectsHeader is the column header of the exported subject sheet.
const LocalSubjectsHeader = "Local Subjects"
