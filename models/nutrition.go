package models

// A catalog record from the public food-composition table. All amounts are
// kept as the source's decimal strings and parsed to numbers only when a
// consumer needs to do arithmetic (see services.StatsService).
type NutritionFacts struct {
	Name         string `json:"식품명"`
	Energy       string `json:"에너지(kcal)"`
	Carbohydrate string `json:"탄수화물(g)"`
	Protein      string `json:"단백질(g)"`
	Fat          string `json:"지방(g)"`
	Sugar        string `json:"당류(g)"`
	Calcium      string `json:"칼슘(mg)"`
	Iron         string `json:"철(mg)"`
	Phosphorus   string `json:"인(mg)"`
	Potassium    string `json:"칼륨(mg)"`
	VitaminA     string `json:"비타민 A(μg RAE)"`
	VitaminC     string `json:"비타민 C(mg)"`
	VitaminD     string `json:"비타민 D(μg)"`
}
