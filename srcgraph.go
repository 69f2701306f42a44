package srcgraph

// Version is reported by the CLI and recorded in index snapshots.
const Version = "0.3.0"
