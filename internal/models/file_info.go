package models

import "time"

// FileInfo represents metadata about a stored path document.
type FileInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// FileEntry is a directory listing entry returned by a file system collaborator.
type FileEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}
