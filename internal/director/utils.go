package director

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// GenerateScriptPath names a script after the collection it was compiled
// from, stamped with the current time, in dir.
func GenerateScriptPath(dir, source string) string {
	baseName := filepath.Base(source)
	nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	cleanName := strings.ReplaceAll(nameOnly, " ", "_")
	if cleanName == "" || cleanName == "." {
		cleanName = "script"
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", cleanName, timestamp))
}
