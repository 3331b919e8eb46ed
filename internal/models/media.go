package models

import "time"

// FileType classifies stored media
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeMarkdown FileType = "markdown"
)

// Media is the metadata row of an uploaded file
type Media struct {
	ID               string    `json:"id" db:"id"`
	RelativePath     string    `json:"relative_path" db:"relative_path"`
	OriginalFilename string    `json:"original_filename" db:"original_filename"`
	FileType         FileType  `json:"file_type" db:"file_type"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// UploadResult is returned by media uploads
type UploadResult struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// MarkdownContent is returned by GET /media/markdown/:id
type MarkdownContent struct {
	ID               string `json:"id"`
	Content          string `json:"content"`
	OriginalFilename string `json:"original_filename"`
}
