package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"legal_cms_go/middleware"
	"legal_cms_go/models"
	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type documentMetadataRequest struct {
	CaseID   uint    `json:"caseId"`
	Title    string  `json:"title"`
	DocType  string  `json:"docType"`
	FileType string  `json:"fileType"`
	FilePath *string `json:"filePath"`
	FileSize string  `json:"fileSize"`
}

type documentUpdateRequest struct {
	Title   *string `json:"title"`
	DocType *string `json:"docType"`
}

func (h *Handler) ListDocuments(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	caseID, err := queryID(c, "case_id")
	if err != nil {
		return err
	}

	docs, err := services.ListDocuments(h.db(c), user, services.DocumentFilter{
		CaseID: caseID,
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]models.DocumentResponse, 0, len(docs))
	for i := range docs {
		resp = append(resp, docs[i].ToResponse())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetDocument(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Document not found")
	if err != nil {
		return err
	}

	doc, err := services.GetDocument(h.db(c), user, id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, doc.ToResponse())
}

// UploadDocument accepts either a multipart file upload or a JSON body that
// records a document stored elsewhere
func (h *Handler) UploadDocument(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var (
		doc *models.Document
		err error
	)
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		doc, err = h.uploadFile(c, user)
	} else {
		doc, err = h.recordDocument(c, user)
	}
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Document uploaded",
		"document": doc.ToResponse(),
	})
}

func (h *Handler) uploadFile(c echo.Context, user *models.User) (*models.Document, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, services.BadRequest("No file selected")
	}

	var caseID uint
	if raw := c.FormValue("caseId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, services.BadRequest("Invalid caseId")
		}
		caseID = uint(parsed)
	}

	return services.UploadDocument(c.Request().Context(), h.db(c), h.Storage, user,
		caseID, c.FormValue("title"), fileHeader, h.Config.MaxUploadSize)
}

func (h *Handler) recordDocument(c echo.Context, user *models.User) (*models.Document, error) {
	var req documentMetadataRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}

	return services.CreateDocumentRecord(h.db(c), user, services.DocumentMetadataInput{
		CaseID:   req.CaseID,
		Title:    req.Title,
		DocType:  req.DocType,
		FileType: req.FileType,
		FilePath: req.FilePath,
		FileSize: req.FileSize,
	})
}

// DownloadDocument streams the stored file of a visible document
func (h *Handler) DownloadDocument(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Document not found")
	if err != nil {
		return err
	}

	reader, contentType, doc, err := services.OpenDocument(c.Request().Context(), h.db(c), h.Storage, user, id)
	if err != nil {
		return toHTTPError(err)
	}
	defer reader.Close()

	filename := doc.Title
	if !strings.HasSuffix(strings.ToLower(filename), "."+doc.FileType) {
		filename = fmt.Sprintf("%s.%s", filename, doc.FileType)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)

	if _, err := io.Copy(c.Response(), reader); err != nil {
		zap.L().Warn("document download interrupted", zap.Uint("document_id", doc.ID), zap.Error(err))
	}
	return nil
}

func (h *Handler) UpdateDocument(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Document not found")
	if err != nil {
		return err
	}

	var req documentUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	doc, err := services.UpdateDocument(h.db(c), user, id, services.DocumentUpdate{
		Title:   req.Title,
		DocType: req.DocType,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Document updated",
		"document": doc.ToResponse(),
	})
}

func (h *Handler) VerifyDocument(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Document not found")
	if err != nil {
		return err
	}

	doc, err := services.VerifyDocument(h.db(c), user, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Document verified",
		"document": doc.ToResponse(),
	})
}

func (h *Handler) DeleteDocument(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Document not found")
	if err != nil {
		return err
	}

	if err := services.DeleteDocument(c.Request().Context(), h.db(c), h.Storage, user, id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Document deleted"})
}
