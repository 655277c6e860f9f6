package models

import (
	"time"

	"github.com/google/uuid"
)

// Exam defines the exam document metadata based on the 'exams' table.
// BlobID links the record to exactly one object in the exams blob bucket.
type Exam struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	FileName    string     `json:"fileName" db:"file_name"`
	FileType    string     `json:"fileType" db:"file_type"`
	FileSize    int64      `json:"fileSize" db:"file_size"`
	FileURL     string     `json:"fileUrl"` // computed download path, not stored
	BlobID      *uuid.UUID `json:"blobId,omitempty" db:"blob_id"`
	UploadedBy  int64      `json:"uploadedBy" db:"uploaded_by"`
	Status      ExamStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	UploaderName string `json:"uploaderName,omitempty"` // populated on list
}
