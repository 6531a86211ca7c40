package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"legal_cms_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadDocument(t *testing.T) {
	db := setupTestDB(t)
	storage := NewLocalStorage(t.TempDir())
	ctx := context.Background()
	advocate := mustUser(t, db, "Adv. Priya Sharma", "priya@example.com", models.RoleAdvocate)
	citizen := mustUser(t, db, "Ramesh Kumar", "ramesh@example.com", models.RolePublic)
	c := mustCase(t, db, &models.Case{CaseNumber: "CIV-1", Title: "Property Dispute", Petitioner: "Ramesh Kumar", PetitionerID: &citizen.ID, Respondent: "B", AdvocateID: &advocate.ID})

	doc, err := UploadDocument(ctx, db, storage, advocate, c.ID, "", createMockFileHeader("Sale Deed.PDF", []byte("%PDF-1.4 deed"), "application/pdf"), 0)
	require.NoError(t, err)
	assert.Equal(t, "Sale Deed.PDF", doc.Title)
	assert.Equal(t, "pdf", doc.FileType)
	assert.Equal(t, models.DocTypeDocument, doc.DocType)
	require.NotNil(t, doc.FileSize)
	assert.Equal(t, "0.0 KB", *doc.FileSize)
	assert.False(t, doc.Verified)

	t.Run("PetitionerCanRead", func(t *testing.T) {
		reader, contentType, got, err := OpenDocument(ctx, db, storage, citizen, doc.ID)
		require.NoError(t, err)
		defer reader.Close()
		body, _ := io.ReadAll(reader)
		assert.Equal(t, "%PDF-1.4 deed", string(body))
		assert.Equal(t, "application/pdf", contentType)
		assert.Equal(t, doc.ID, got.ID)
	})

	t.Run("PublicCannotUpload", func(t *testing.T) {
		_, err := UploadDocument(ctx, db, storage, citizen, c.ID, "", createMockFileHeader("a.pdf", []byte("x"), "application/pdf"), 0)
		assert.True(t, errors.Is(err, ErrForbidden))
	})

	t.Run("TooLarge", func(t *testing.T) {
		_, err := UploadDocument(ctx, db, storage, advocate, c.ID, "", createMockFileHeader("big.pdf", make([]byte, 2048), "application/pdf"), 1024)
		assert.True(t, errors.Is(err, ErrTooLarge))
	})

	t.Run("MetadataWithoutFile", func(t *testing.T) {
		record, err := CreateDocumentRecord(db, advocate, DocumentMetadataInput{CaseID: c.ID, Title: "Vakalatnama"})
		require.NoError(t, err)
		assert.Equal(t, "pdf", record.FileType)

		_, _, _, err = OpenDocument(ctx, db, storage, advocate, record.ID)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("FilterByStatus", func(t *testing.T) {
		_, err := VerifyDocument(db, advocate, doc.ID)
		require.NoError(t, err)

		verified, err := ListDocuments(db, citizen, DocumentFilter{Status: "verified"})
		require.NoError(t, err)
		require.Len(t, verified, 1)
		assert.Equal(t, doc.ID, verified[0].ID)

		pending, err := ListDocuments(db, citizen, DocumentFilter{Status: "pending"})
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})
}

func TestUpdateDocument(t *testing.T) {
	db := setupTestDB(t)
	advocate := mustUser(t, db, "Adv. Priya Sharma", "priya@example.com", models.RoleAdvocate)
	c := mustCase(t, db, &models.Case{CaseNumber: "CIV-1", Title: "Property Dispute", Petitioner: "A", Respondent: "B", AdvocateID: &advocate.ID})
	doc, err := CreateDocumentRecord(db, advocate, DocumentMetadataInput{CaseID: c.ID, Title: "Survey"})
	require.NoError(t, err)

	title, kind := "Land Survey Map", models.DocTypeImage
	updated, err := UpdateDocument(db, advocate, doc.ID, DocumentUpdate{Title: &title, DocType: &kind})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, kind, updated.DocType)

	bogus := "Spreadsheet"
	_, err = UpdateDocument(db, advocate, doc.ID, DocumentUpdate{DocType: &bogus})
	assert.True(t, errors.Is(err, ErrBadRequest))
}

func TestDeleteDocumentPermissions(t *testing.T) {
	db := setupTestDB(t)
	storage := NewLocalStorage(t.TempDir())
	ctx := context.Background()
	priya := mustUser(t, db, "Adv. Priya Sharma", "priya@example.com", models.RoleAdvocate)
	court := mustUser(t, db, "Court Admin", "court@example.com", models.RoleCourt)
	vikram := mustUser(t, db, "Adv. Vikram Singh", "vikram@example.com", models.RoleAdvocate)
	c := mustCase(t, db, &models.Case{CaseNumber: "CIV-1", Title: "Property Dispute", Petitioner: "A", Respondent: "B", AdvocateID: &priya.ID})

	byCourt, err := UploadDocument(ctx, db, storage, court, c.ID, "Order", createMockFileHeader("order.pdf", []byte("%PDF"), "application/pdf"), 0)
	require.NoError(t, err)
	byPriya, err := UploadDocument(ctx, db, storage, priya, c.ID, "Deed", createMockFileHeader("deed.pdf", []byte("%PDF"), "application/pdf"), 0)
	require.NoError(t, err)

	err = DeleteDocument(ctx, db, storage, priya, byCourt.ID)
	assert.True(t, errors.Is(err, ErrForbidden))

	err = DeleteDocument(ctx, db, storage, vikram, byPriya.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, DeleteDocument(ctx, db, storage, priya, byPriya.ID))
	_, _, err = storage.Get(ctx, *byPriya.FilePath)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	// a blob that is already gone does not block the delete
	require.NoError(t, storage.Delete(ctx, *byCourt.FilePath))
	require.NoError(t, DeleteDocument(ctx, db, storage, court, byCourt.ID))
}
