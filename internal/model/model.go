// Package model holds the wire-level data types exchanged with the DocsLM backend.
package model

// Job is an immutable snapshot of a commessa as returned by the search
// endpoint. Code identifies the job within a result set; the backend does not
// enforce global uniqueness.
type Job struct {
	Code           string `json:"code"`
	Typeof         string `json:"typeof"`
	StartDate      string `json:"start_date"`
	Company        string `json:"company"`
	Customer       string `json:"customer"`
	Goal           string `json:"goal"`
	OrderNumber    string `json:"order_number"`
	ProjectManager string `json:"project_manager"`
	EndDate        string `json:"end_date"`
	Status         string `json:"status"`
	Site           string `json:"site"`
	Output         string `json:"output"`
}

// Collection is an existing notebook grouping under a job. Read-only from the
// client's perspective.
type Collection struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// FileEntry is one element of a directory listing. Name is a path segment,
// not a full path.
type FileEntry struct {
	Name  string  `json:"name"`
	IsDir bool    `json:"is_dir"`
	Size  int64   `json:"size"`
	Mtime float64 `json:"mtime"`
}

// DirectoryListing is the result of listing one directory of a job's file
// tree. Subpath is a "/"-joined path relative to the job's file root; the
// empty string denotes the root itself.
type DirectoryListing struct {
	Commessa string      `json:"commessa"`
	Subpath  string      `json:"subpath"`
	Entries  []FileEntry `json:"entries"`
}

// User is the identity returned by the login endpoint.
type User struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Initial string `json:"initial"`
}

// ContextButton references a source document backing a chat reply.
type ContextButton struct {
	Label     string `json:"label"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	PageStart *int   `json:"page_start"`
	PageEnd   *int   `json:"page_end"`
	Index     int    `json:"index"`
}

// ChatReply is the agent's answer to a chat message.
type ChatReply struct {
	Response       string          `json:"response"`
	HasContext     bool            `json:"has_context"`
	ContextButtons []ContextButton `json:"context_buttons"`
}

// CollectionFile is the stored metadata of a file indexed into a collection.
type CollectionFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}
