package logging

// Field names shared by every structured log line.
const (
	FieldComponent  = "component"
	FieldFile       = "file"
	FieldFiles      = "files"
	FieldPhase      = "phase"
	FieldBackend    = "backend"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
	FieldPath       = "path"
	FieldConfig     = "config"
	FieldJobs       = "jobs"
)
