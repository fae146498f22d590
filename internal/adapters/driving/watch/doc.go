// Package watch imports syllabus files dropped into a folder.
//
// The watcher follows create and write events below a directory, skips
// hidden files and directories, and imports each file path at most once
// per process. Files that are still empty or half written when the first
// event arrives are retried on the next write.
package watch
