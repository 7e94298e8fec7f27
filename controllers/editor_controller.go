package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/hyuyu1012/chaeum/models"
	"github.com/hyuyu1012/chaeum/services"

	"github.com/gin-gonic/gin"
)

type EditorController struct {
	Editor *services.EntryEditor
}

func NewEditorController(editor *services.EntryEditor) *EditorController {
	return &EditorController{Editor: editor}
}

// POST /editor/new
func (ec *EditorController) OpenNew(c *gin.Context) {
	ec.Editor.OpenForNew()
	c.JSON(http.StatusOK, gin.H{"state": ec.Editor.State()})
}

// POST /editor/edit  {"view_index": 0}
func (ec *EditorController) OpenEdit(c *gin.Context) {
	var body struct {
		ViewIndex *int `json:"view_index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := ec.Editor.OpenForEdit(*body.ViewIndex); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": ec.Editor.State(), "draft": ec.Editor.Snapshot()})
}

// POST /editor/image  {"image_ref": "file:///…"}
func (ec *EditorController) SelectImage(c *gin.Context) {
	var body struct {
		ImageRef string `json:"image_ref" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := ec.Editor.SelectImage(body.ImageRef); err != nil {
		respondEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": ec.Editor.Snapshot()})
}

// POST /editor/label  {"label": "김치찌개"}
func (ec *EditorController) SetLabel(c *gin.Context) {
	var body struct {
		Label string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := ec.Editor.SetLabel(body.Label); err != nil {
		respondEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": ec.Editor.Snapshot()})
}

// POST /editor/slot  {"meal_slot": "lunch"}
func (ec *EditorController) SetMealSlot(c *gin.Context) {
	var body struct {
		MealSlot models.MealSlot `json:"meal_slot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := ec.Editor.SetMealSlot(body.MealSlot); err != nil {
		respondEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": ec.Editor.Snapshot()})
}

// POST /editor/classify — multipart form, one "file" part
func (ec *EditorController) Classify(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}

	res, err := ec.Editor.Classify(c.Request.Context(), services.ClassifyPayload{
		FileName: fh.Filename,
		Data:     data,
	})
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.Is(err, services.ErrSessionClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.As(err, &ve):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			// classification failure: surfaced as a notice, caller may retry
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	switch {
	case res.Stale:
		c.JSON(http.StatusOK, gin.H{"status": "discarded"})
	case res.NoResult:
		c.JSON(http.StatusOK, gin.H{"status": "no_result"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok", "label": res.Label, "preview": res.Preview})
	}
}

// POST /editor/commit
func (ec *EditorController) Commit(c *gin.Context) {
	res, err := ec.Editor.Commit()
	if err != nil {
		respondEditorError(c, err)
		return
	}

	kind := services.EventEntryCreated
	if res.Replaced {
		kind = services.EventEntryUpdated
	}
	services.EmitDiaryEvent(kind, res.Entry.Date, &res.Entry)
	c.JSON(http.StatusCreated, res)
}

// POST /editor/cancel
func (ec *EditorController) Cancel(c *gin.Context) {
	ec.Editor.Cancel()
	c.JSON(http.StatusOK, gin.H{"state": ec.Editor.State()})
}

func respondEditorError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.Is(err, services.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
