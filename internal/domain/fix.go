package domain

import "time"

// InspectReport is the result of inspecting a project.
type InspectReport struct {
	RootPath     string      `json:"root_path"`
	FilesScanned int         `json:"files_scanned"`
	FilesCached  int         `json:"files_cached"`
	Issues       []Issue     `json:"issues"`
	FileErrors   []FileError `json:"file_errors,omitempty"`
	Warnings     []string    `json:"warnings,omitempty"`
}

// Fixable counts issues that carry a fix.
func (r *InspectReport) Fixable() int {
	n := 0
	for _, i := range r.Issues {
		if i.FixAvailable {
			n++
		}
	}
	return n
}

// FileError is a file that could not be read, parsed or written.
type FileError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

type FixResult struct {
	RootPath     string        `json:"root_path"`
	DryRun       bool          `json:"dry_run"`
	CommitHash   string        `json:"commit_hash,omitempty"`
	Applied      []AppliedFix  `json:"applied"`
	Failed       []FailedFix   `json:"failed"`
	FilesChanged []string      `json:"files_changed"`
	FileErrors   []FileError   `json:"file_errors,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
	Duration     time.Duration `json:"duration"`
}

type AppliedFix struct {
	Inspection  string `json:"inspection"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

type FailedFix struct {
	Inspection string `json:"inspection"`
	File       string `json:"file"`
	Line       int    `json:"line"`
	Method     string `json:"method"`
	Kind       string `json:"kind"`
	Error      string `json:"error"`
}

type FixOptions struct {
	DryRun     bool     `json:"dry_run"`
	AllowDirty bool     `json:"allow_dirty"`
	Only       []string `json:"only,omitempty"`
}

// Selected reports whether the inspection id passes the Only filter.
func (o FixOptions) Selected(id string) bool {
	if len(o.Only) == 0 {
		return true
	}
	for _, s := range o.Only {
		if s == id {
			return true
		}
	}
	return false
}

type InspectOptions struct {
	NoCache bool     `json:"no_cache"`
	Only    []string `json:"only,omitempty"`
}

// RunEntry is one fix run recorded in the project history.
type RunEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	CommitHash   string    `json:"commit_hash,omitempty"`
	Applied      int       `json:"applied"`
	Failed       int       `json:"failed"`
	FilesChanged []string  `json:"files_changed,omitempty"`
}
