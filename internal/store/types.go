package store

// File is one scanned source file in a snapshot.
type File struct {
	ID      int64
	Path    string
	RelPath string
	Size    int64
	Hash    string // content hash; empty when the file could not be read
	Lossy   bool
	Error   string // empty when the file was read successfully
}

// FileFacts is everything recorded for one file: the file row plus its
// sorted definition, call, and import names.
type FileFacts struct {
	File    File
	Defs    []string
	Calls   []string
	Imports []string
}
