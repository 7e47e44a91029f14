// Package files provides file system discovery and output helpers.
//
// Discovery finds dump files in a directory by extension or glob pattern.
// Manager writes export files below a base directory, creating parent
// directories as needed.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/data")
//	dumps, err := discovery.FindDumpFiles("dumps", ".pkl")
//
//	manager := files.NewManager("out", logger)
//	w, err := manager.Create("steel_run/line.csv")
package files
