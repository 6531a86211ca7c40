package models

import (
	"time"
)

// Document kinds derived from the file extension
const (
	DocTypeDocument = "Document"
	DocTypeImage    = "Image"
	DocTypeVideo    = "Video"
)

// Document status filter values
const (
	DocumentStatusVerified = "verified"
	DocumentStatusPending  = "pending"
)

type Document struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CaseID     uint      `gorm:"not null;index" json:"case_id"`
	UploadedBy uint      `gorm:"not null;index" json:"uploaded_by"`
	Title      string    `gorm:"size:300;not null" json:"title"`
	DocType    string    `gorm:"size:50;not null;default:Document" json:"doc_type"`
	FileType   string    `gorm:"size:10;not null" json:"file_type"`
	FilePath   *string   `gorm:"size:500" json:"file_path"`
	FileSize   *string   `gorm:"size:20" json:"file_size"`
	Verified   bool      `gorm:"not null;default:false" json:"verified"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	Case     *Case `gorm:"foreignKey:CaseID" json:"-"`
	Uploader *User `gorm:"foreignKey:UploadedBy" json:"-"`
}

// TableName specifies the table name for Document model
func (Document) TableName() string {
	return "documents"
}

// Status returns "verified" or "pending"
func (d *Document) Status() string {
	if d.Verified {
		return DocumentStatusVerified
	}
	return DocumentStatusPending
}

type DocumentResponse struct {
	ID         string  `json:"id"`
	DBID       uint    `json:"dbId"`
	CaseID     uint    `json:"caseId"`
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	FileType   string  `json:"fileType"`
	FilePath   *string `json:"filePath"`
	FileSize   *string `json:"fileSize"`
	Size       *string `json:"size"`
	Verified   bool    `json:"verified"`
	Status     string  `json:"status"`
	UploadedBy *string `json:"uploadedBy"`
	UploadedAt *string `json:"uploadedAt"`
}

// ToResponse serializes the document. Uploader must be preloaded for uploadedBy.
func (d *Document) ToResponse() DocumentResponse {
	resp := DocumentResponse{
		ID:         displayID("EVD", d.ID),
		DBID:       d.ID,
		CaseID:     d.CaseID,
		Title:      d.Title,
		Type:       d.DocType,
		FileType:   d.FileType,
		FilePath:   d.FilePath,
		FileSize:   d.FileSize,
		Size:       d.FileSize,
		Verified:   d.Verified,
		Status:     d.Status(),
		UploadedAt: FormatDateTime(&d.UploadedAt),
	}
	if d.Uploader != nil {
		name := d.Uploader.Name
		resp.UploadedBy = &name
	}
	return resp
}
