package testlib

import (
	"fmt"
	"strings"
)

func ServerEndpoint(path string) string {
	if !strings.HasPrefix(path, "/") {
		panic("path convention should start with /")
	}

	return fmt.Sprintf("http://localhost%s%s", ServerPort, path)
}

// SessionEndpoint addresses a route under one session, path may be empty
func SessionEndpoint(sessionID string, path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		panic("path convention should start with /")
	}

	return ServerEndpoint(fmt.Sprintf("/sessions/%s%s", sessionID, path))
}
