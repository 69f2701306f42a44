package main

// CLIResult is the top-level JSON envelope for all query commands.
type CLIResult struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
	Results any      `json:"results"`
	Error   string   `json:"error,omitempty"`
}

// CLIFile is a JSON-friendly snapshot file record.
type CLIFile struct {
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	Hash  string `json:"hash,omitempty"`
	Lossy bool   `json:"lossy,omitempty"`
	Error string `json:"error,omitempty"`
}
