package main

import "fmt"

// formatFailure renders a command error for stderr. Contract errors already
// carry their stage and stable code in the message.
func formatFailure(err error) string {
	return fmt.Sprintf("ERROR: %v", err)
}
