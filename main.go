package main

import (
	"log"
	"os"
	"strings"

	"codeprompt/cmd"
	"codeprompt/pkg/logging"

	"golang.org/x/term"
)

func main() {
	err := cmd.Execute()

	// Syncing a logger bound to a pipe or a character device other than a
	// terminal fails with "invalid argument"; only sync where it can work.
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logging.Logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
