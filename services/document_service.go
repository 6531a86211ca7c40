package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"legal_cms_go/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DocumentFilter holds the optional list filters
type DocumentFilter struct {
	CaseID uint
	Status string // verified or pending
}

// ListDocuments returns documents on cases visible to user, newest first
func ListDocuments(db *gorm.DB, user *models.User, filter DocumentFilter) ([]models.Document, error) {
	query := db.Model(&models.Document{}).Preload("Uploader").
		Where("documents.case_id IN (?)", VisibleCaseIDs(db, user))

	if filter.CaseID != 0 {
		query = query.Where("documents.case_id = ?", filter.CaseID)
	}
	switch filter.Status {
	case models.DocumentStatusVerified:
		query = query.Where("documents.verified = ?", true)
	case models.DocumentStatusPending:
		query = query.Where("documents.verified = ?", false)
	}

	var docs []models.Document
	if err := query.Order("documents.uploaded_at DESC").Order("documents.id DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// GetDocument returns a document on a case visible to user
func GetDocument(db *gorm.DB, user *models.User, id uint) (*models.Document, error) {
	var doc models.Document
	err := db.Preload("Uploader").
		Where("documents.id = ? AND documents.case_id IN (?)", id, VisibleCaseIDs(db, user)).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Document not found")
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return &doc, nil
}

// UploadDocument stores the file and records it against a visible case. The
// blob is written before the row is committed.
func UploadDocument(ctx context.Context, db *gorm.DB, storage StorageProvider, user *models.User, caseID uint, title string, file *multipart.FileHeader, maxSize int64) (*models.Document, error) {
	if !user.CanManageCases() {
		return nil, Forbidden("Only court/advocate can upload documents")
	}

	ext, err := ValidateDocumentUpload(file, maxSize)
	if err != nil {
		return nil, err
	}

	if caseID == 0 {
		return nil, BadRequest("caseId is required")
	}
	if err := RequireVisibleCase(db, user, caseID); err != nil {
		return nil, err
	}

	key := GenerateCaseDocumentKey(caseID, file.Filename)
	result, err := storage.Upload(ctx, file, key)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = filepath.Base(file.Filename)
	}

	size := FormatFileSize(result.FileSize)
	doc := &models.Document{
		CaseID:     caseID,
		UploadedBy: user.ID,
		Title:      title,
		DocType:    DocTypeForExtension(ext),
		FileType:   ext,
		FilePath:   &result.Key,
		FileSize:   &size,
	}
	if err := db.Create(doc).Error; err != nil {
		removeBlobs(ctx, storage, []string{result.Key})
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	doc.Uploader = user

	zap.L().Info("document uploaded",
		zap.Uint("document_id", doc.ID),
		zap.Uint("case_id", caseID),
		zap.String("storage", storage.Name()),
		zap.String("size", size),
	)
	return doc, nil
}

// DocumentMetadataInput records a document stored outside this service
type DocumentMetadataInput struct {
	CaseID   uint
	Title    string
	DocType  string
	FileType string
	FilePath *string
	FileSize string
}

// CreateDocumentRecord records document metadata without a file body
func CreateDocumentRecord(db *gorm.DB, user *models.User, input DocumentMetadataInput) (*models.Document, error) {
	if !user.CanManageCases() {
		return nil, Forbidden("Only court/advocate can upload documents")
	}
	if input.CaseID == 0 || strings.TrimSpace(input.Title) == "" {
		return nil, BadRequest("caseId and title are required")
	}
	if err := RequireVisibleCase(db, user, input.CaseID); err != nil {
		return nil, err
	}

	docType := input.DocType
	if docType == "" {
		docType = models.DocTypeDocument
	}
	fileType := strings.ToLower(input.FileType)
	if fileType == "" {
		fileType = "pdf"
	}
	size := input.FileSize
	if size == "" {
		size = "0 KB"
	}

	doc := &models.Document{
		CaseID:     input.CaseID,
		UploadedBy: user.ID,
		Title:      strings.TrimSpace(input.Title),
		DocType:    docType,
		FileType:   fileType,
		FilePath:   input.FilePath,
		FileSize:   &size,
	}
	if err := db.Create(doc).Error; err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	doc.Uploader = user
	return doc, nil
}

// DocumentUpdate holds editable document metadata. Nil means unchanged.
type DocumentUpdate struct {
	Title   *string
	DocType *string
}

// UpdateDocument edits title and kind of a visible document
func UpdateDocument(db *gorm.DB, user *models.User, id uint, input DocumentUpdate) (*models.Document, error) {
	if !user.CanManageCases() {
		return nil, Forbidden("Only court/advocate can edit documents")
	}

	doc, err := GetDocument(db, user, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, BadRequest("Title cannot be empty")
		}
		doc.Title = title
	}
	if input.DocType != nil {
		switch *input.DocType {
		case models.DocTypeDocument, models.DocTypeImage, models.DocTypeVideo:
			doc.DocType = *input.DocType
		default:
			return nil, BadRequest("Invalid document type")
		}
	}

	if err := db.Model(doc).Updates(map[string]interface{}{"title": doc.Title, "doc_type": doc.DocType}).Error; err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	return doc, nil
}

// VerifyDocument marks a visible document as verified. Verifying twice is a
// no-op.
func VerifyDocument(db *gorm.DB, user *models.User, id uint) (*models.Document, error) {
	if !user.CanManageCases() {
		return nil, Forbidden("Only court/advocate can verify documents")
	}

	doc, err := GetDocument(db, user, id)
	if err != nil {
		return nil, err
	}

	if !doc.Verified {
		if err := db.Model(doc).Update("verified", true).Error; err != nil {
			return nil, fmt.Errorf("failed to verify document: %w", err)
		}
		doc.Verified = true
	}
	return doc, nil
}

// OpenDocument returns a reader for the stored blob of a visible document
func OpenDocument(ctx context.Context, db *gorm.DB, storage StorageProvider, user *models.User, id uint) (io.ReadCloser, string, *models.Document, error) {
	doc, err := GetDocument(db, user, id)
	if err != nil {
		return nil, "", nil, err
	}
	if doc.FilePath == nil || *doc.FilePath == "" {
		return nil, "", nil, NotFound("Document has no stored file")
	}

	reader, contentType, err := storage.Get(ctx, *doc.FilePath)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return nil, "", nil, NotFound("Stored file not found")
		}
		return nil, "", nil, fmt.Errorf("failed to open document: %w", err)
	}
	return reader, contentType, doc, nil
}

// DeleteDocument removes a document. Court users may delete any visible
// document, everyone else only their own uploads. The stored blob is removed
// first; a missing blob or storage failure never blocks the row delete.
func DeleteDocument(ctx context.Context, db *gorm.DB, storage StorageProvider, user *models.User, id uint) error {
	var doc models.Document
	err := db.Where("documents.id = ? AND (documents.case_id IN (?) OR documents.uploaded_by = ?)", id, VisibleCaseIDs(db, user), user.ID).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Document not found")
		}
		return fmt.Errorf("failed to load document: %w", err)
	}

	if !user.IsCourt() && doc.UploadedBy != user.ID {
		return Forbidden("Only the court or the uploader can delete this document")
	}

	if doc.FilePath != nil && *doc.FilePath != "" {
		removeBlobs(ctx, storage, []string{*doc.FilePath})
	}

	if err := db.Delete(&doc).Error; err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	zap.L().Info("document deleted", zap.Uint("document_id", doc.ID), zap.Uint("user_id", user.ID))
	return nil
}
