package services

import (
	"fmt"

	"github.com/hyuyu1012/chaeum/models"
	"github.com/hyuyu1012/chaeum/utils"
)

// StatsService aggregates the stored nutrition snapshots over a day range
// for the statistics screen. Amounts live as decimal text on the entries
// and are parsed here, at aggregation time, only.
type StatsService struct {
	store *EntryStore
}

func NewStatsService(store *EntryStore) *StatsService {
	return &StatsService{store: store}
}

// StatsSummary is the aggregate for [From, To], both inclusive canonical
// days. Totals carries the summed amounts rendered back to the catalog's
// string convention, keyed the same way as a single record.
type StatsSummary struct {
	From           string                `json:"from"`
	To             string                `json:"to"`
	EntriesCounted int                   `json:"entries_counted"`
	EntriesSkipped int                   `json:"entries_skipped"` // no nutrition snapshot
	Totals         models.NutritionFacts `json:"totals"`
}

// Totals sums every nutrition field across entries whose date falls in the
// range. Entries without a snapshot are counted separately but contribute
// nothing.
func (s *StatsService) Totals(from, to string) (*StatsSummary, error) {
	if from > to {
		return nil, fmt.Errorf("invalid range: %s after %s", from, to)
	}

	acc := map[string]float64{}
	sum := &StatsSummary{From: from, To: to}

	for _, e := range s.store.All() {
		// canonical day strings order lexicographically
		if e.Date < from || e.Date > to {
			continue
		}
		if e.Nutrition == nil {
			sum.EntriesSkipped++
			continue
		}
		sum.EntriesCounted++

		n := e.Nutrition
		acc["energy"] += utils.ParseAmount(n.Energy)
		acc["carbohydrate"] += utils.ParseAmount(n.Carbohydrate)
		acc["protein"] += utils.ParseAmount(n.Protein)
		acc["fat"] += utils.ParseAmount(n.Fat)
		acc["sugar"] += utils.ParseAmount(n.Sugar)
		acc["calcium"] += utils.ParseAmount(n.Calcium)
		acc["iron"] += utils.ParseAmount(n.Iron)
		acc["phosphorus"] += utils.ParseAmount(n.Phosphorus)
		acc["potassium"] += utils.ParseAmount(n.Potassium)
		acc["vitamin_a"] += utils.ParseAmount(n.VitaminA)
		acc["vitamin_c"] += utils.ParseAmount(n.VitaminC)
		acc["vitamin_d"] += utils.ParseAmount(n.VitaminD)
	}

	sum.Totals = models.NutritionFacts{
		Energy:       utils.FormatAmount(acc["energy"]),
		Carbohydrate: utils.FormatAmount(acc["carbohydrate"]),
		Protein:      utils.FormatAmount(acc["protein"]),
		Fat:          utils.FormatAmount(acc["fat"]),
		Sugar:        utils.FormatAmount(acc["sugar"]),
		Calcium:      utils.FormatAmount(acc["calcium"]),
		Iron:         utils.FormatAmount(acc["iron"]),
		Phosphorus:   utils.FormatAmount(acc["phosphorus"]),
		Potassium:    utils.FormatAmount(acc["potassium"]),
		VitaminA:     utils.FormatAmount(acc["vitamin_a"]),
		VitaminC:     utils.FormatAmount(acc["vitamin_c"]),
		VitaminD:     utils.FormatAmount(acc["vitamin_d"]),
	}
	return sum, nil
}
