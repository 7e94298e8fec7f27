package main

import (
	"context"
	"log"

	"github.com/hyuyu1012/chaeum/config"
	"github.com/hyuyu1012/chaeum/controllers"
	"github.com/hyuyu1012/chaeum/routes"
	"github.com/hyuyu1012/chaeum/services"
)

func main() {
	cfg := config.Load()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.Fatalf("load nutrition catalog: %v", err)
	}
	log.Printf("nutrition catalog loaded: %d records", catalog.Len())

	classifier, err := buildClassifier(cfg)
	if err != nil {
		log.Fatalf("init classifier: %v", err)
	}

	store := services.NewEntryStore()
	editor := services.NewEntryEditor(store, catalog, classifier)
	stats := services.NewStatsService(store)

	hub := services.NewRealtimeHub()
	services.InitEventDeps(hub)

	r := routes.SetupRouter(routes.Deps{
		Diary:    controllers.NewDiaryController(store, editor),
		Editor:   controllers.NewEditorController(editor),
		Catalog:  controllers.NewCatalogController(catalog),
		Stats:    controllers.NewStatsController(stats),
		Realtime: controllers.NewRealtimeController(hub),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func loadCatalog(cfg *config.Config) (*services.NutritionCatalog, error) {
	if cfg.CatalogPath != "" {
		return services.LoadNutritionCatalog(cfg.CatalogPath)
	}
	return services.NewNutritionCatalog()
}

func buildClassifier(cfg *config.Config) (services.Classifier, error) {
	if cfg.ClassifierBackend == "rekognition" {
		return services.NewRekognitionClassifier(context.Background(), cfg.AWSRegion)
	}
	return services.NewHTTPClassifier(cfg.ClassifierURL), nil
}
