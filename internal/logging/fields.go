package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Input and output fields.
	FieldGeometry    = "geometry"
	FieldMaterial    = "material"
	FieldGeometryOut = "geometry_out"
	FieldMaterialOut = "material_out"
	FieldBackup      = "backup"
	FieldBytes       = "bytes"

	// Run option fields.
	FieldDryRun   = "dry_run"
	FieldFormat   = "format"
	FieldComments = "comments"
	FieldPrefix   = "prefix"

	// Statistics fields.
	FieldUsages          = "usages"
	FieldDeclarations    = "declarations"
	FieldDeclarationsOut = "declarations_out"
	FieldDuplicated      = "duplicated"
	FieldUnused          = "unused"
	FieldFilesWritten    = "files_written"
	FieldDuration        = "duration"

	// Material fields.
	FieldName    = "name"
	FieldNewName = "new_name"
	FieldLine    = "line"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
