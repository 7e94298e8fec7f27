package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hyuyu1012/chaeum/services"
	"github.com/hyuyu1012/chaeum/utils"

	"github.com/gin-gonic/gin"
)

type DiaryController struct {
	Store  *services.EntryStore
	Editor *services.EntryEditor
}

func NewDiaryController(store *services.EntryStore, editor *services.EntryEditor) *DiaryController {
	return &DiaryController{Store: store, Editor: editor}
}

// GET /diary?date=2025-06-14 — defaults to the selected date
func (dc *DiaryController) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = dc.Editor.SelectedDate()
	}
	date, err := utils.ParseDay(date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries := dc.Store.ViewForDate(date)
	c.JSON(http.StatusOK, gin.H{"date": date, "entries": entries})
}

// PUT /diary/date  {"date": "2025-06-14"} — calendar callback
func (dc *DiaryController) SelectDate(c *gin.Context) {
	var body struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	date, err := utils.ParseDay(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dc.Editor.SetSelectedDate(date)
	c.JSON(http.StatusOK, gin.H{"date": date})
}

// DELETE /diary/:date/:index — index is view-relative for that date
func (dc *DiaryController) Delete(c *gin.Context) {
	date, err := utils.ParseDay(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	viewIndex, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}

	removed, err := dc.Store.RemoveForDate(date, viewIndex)
	if err != nil {
		if errors.Is(err, services.ErrIndexNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	services.EmitDiaryEvent(services.EventEntryDeleted, date, &removed)
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
