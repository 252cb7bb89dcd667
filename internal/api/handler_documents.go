package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"familyhub-backend/internal/auth"
	"familyhub-backend/internal/model"
	"familyhub-backend/internal/upload"
)

// UploadDocument handles POST /api/documents (multipart form: file, plus
// optional name and category fields).
func (h *Handler) UploadDocument(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	storedName, err := h.saver.Save(fh)
	switch {
	case errors.Is(err, upload.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	case errors.Is(err, upload.ErrExtensionNotAllowed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = fh.Filename
	}

	doc := model.Document{
		FamilyID:     auth.FamilyID(c),
		Name:         name,
		StoredName:   storedName,
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		Category:     c.PostForm("category"),
		UploadedBy:   auth.UserID(c),
	}
	if err := h.store.CreateDocument(c.Request.Context(), &doc); err != nil {
		// The row failed, so the stored file is orphaned. Take it back out.
		if rmErr := h.saver.Remove(storedName); rmErr != nil {
			log.Printf("Failed to clean up orphaned upload %s: %v", storedName, rmErr)
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// ListDocuments handles GET /api/documents.
func (h *Handler) ListDocuments(c *gin.Context) {
	docs, err := h.store.ListDocuments(c.Request.Context(), auth.FamilyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// DownloadDocument handles GET /api/documents/:id/download, streaming the
// file under its original name.
func (h *Handler) DownloadDocument(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	doc, err := h.store.GetDocument(c.Request.Context(), auth.FamilyID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.FileAttachment(h.saver.Path(doc.StoredName), doc.OriginalName)
}

// DeleteDocument handles DELETE /api/documents/:id. The row goes first;
// a file that fails to delete afterwards is logged and swept up later
// rather than resurrecting the row.
func (h *Handler) DeleteDocument(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	doc, err := h.store.GetDocument(c.Request.Context(), auth.FamilyID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.store.DeleteDocument(c.Request.Context(), auth.FamilyID(c), id); err != nil {
		fail(c, err)
		return
	}
	if err := h.saver.Remove(doc.StoredName); err != nil {
		log.Printf("Failed to remove file %s for deleted document %s: %v", doc.StoredName, id, err)
	}
	c.Status(http.StatusNoContent)
}
