package routes

import (
	"github.com/hyuyu1012/chaeum/controllers"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Diary    *controllers.DiaryController
	Editor   *controllers.EditorController
	Catalog  *controllers.CatalogController
	Stats    *controllers.StatsController
	Realtime *controllers.RealtimeController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	diary := r.Group("/diary")
	{
		diary.GET("", d.Diary.ListByDate)
		diary.PUT("/date", d.Diary.SelectDate)
		diary.DELETE("/:date/:index", d.Diary.Delete)
	}

	editor := r.Group("/editor")
	{
		editor.POST("/new", d.Editor.OpenNew)
		editor.POST("/edit", d.Editor.OpenEdit)
		editor.POST("/image", d.Editor.SelectImage)
		editor.POST("/label", d.Editor.SetLabel)
		editor.POST("/slot", d.Editor.SetMealSlot)
		editor.POST("/classify", d.Editor.Classify)
		editor.POST("/commit", d.Editor.Commit)
		editor.POST("/cancel", d.Editor.Cancel)
	}

	r.GET("/catalog/search", d.Catalog.Search)
	r.GET("/stats", d.Stats.Totals)
	r.GET("/ws", d.Realtime.DiaryWS)

	return r
}
