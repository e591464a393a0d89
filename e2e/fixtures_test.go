//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// bfsTrace reaches the goal in six search steps on a 3x3 maze
var bfsTrace = strings.Join([]string{
	`{"op":"meta","n":3,"m":3,"sx":0,"sy":0,"ex":2,"ey":2}`,
	`{"op":"wall","x":1,"y":0}`,
	`{"op":"frontier_add","t":1,"x":0,"y":1,"px":0,"py":0}`,
	`{"op":"set_current","t":2,"x":0,"y":1}`,
	`{"op":"frontier_add","t":3,"x":1,"y":1,"px":0,"py":1}`,
	`{"op":"set_current","t":4,"x":1,"y":1}`,
	`{"op":"frontier_add","t":5,"x":2,"y":2,"px":1,"py":1}`,
	`{"op":"found","t":6,"x":2,"y":2}`,
}, "\n") + "\n"

// CreateTestWorkspace creates a temporary directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteTrace writes a trace file into the workspace
func (tf *TUITestFramework) WriteTrace(name, content string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write trace: %w", err)
	}
	return path, nil
}
