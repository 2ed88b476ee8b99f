package combine

// Source is one entry of a file selection list.
type Source struct {
	Label string // Identifier written into the prompt
	Path  string // Location the contents are read from
}

// FileContent holds the content of a file after reading.
type FileContent struct {
	Path    string // Identifier written into the prompt
	Content string // Raw file contents
}

// Skipped records a source that was left out because it could not be read.
type Skipped struct {
	Label string
	Err   error
}

// Result is the outcome of rendering a selection list.
type Result struct {
	Prompt   string    // Complete prompt text
	Included []string  // Labels written into the prompt, in order
	Empty    []string  // Labels omitted because the file had no content
	Skipped  []Skipped // Labels omitted because of a read failure
}

// Constants
const (
	Preamble   = "My codebase includes"
	Terminator = "."

	// NoSelectionNotice replaces the prompt when individual mode ends with no files.
	NoSelectionNotice = "No files selected for individual prompt generation."

	sniffLen = 512 // Bytes inspected when deciding whether content is binary
)
