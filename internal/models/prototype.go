package models

// CategoryPrototype pairs a category with the reference phrase that stands for
// it and the phrase's embedding. Prototypes are built once and never mutated.
type CategoryPrototype struct {
	Category  Category
	Phrase    string
	Embedding []float32
}

// PrototypeConfig is one entry of the prototypes YAML file.
type PrototypeConfig struct {
	Category string `yaml:"category"`
	Phrase   string `yaml:"phrase"`
}

// PrototypesConfig is the structure of the prototypes YAML file.
type PrototypesConfig struct {
	Prototypes []PrototypeConfig `yaml:"prototypes"`
}

var defaultPhrases = map[Category]string{
	CategoryFood:           "restaurant dining meal food eat lunch dinner breakfast cafe",
	CategoryTransportation: "uber taxi bus train gas fuel parking transport travel",
	CategoryShopping:       "store purchase buy retail clothing amazon shopping mall",
	CategoryEntertainment:  "movie theater concert game entertainment fun recreation",
	CategoryBills:          "electricity water internet phone bill utility payment",
	CategoryHealthcare:     "doctor hospital pharmacy medical health medicine",
	CategoryEducation:      "school university course book tuition education learning",
	CategoryTravel:         "hotel flight airline vacation trip travel booking",
	CategoryGroceries:      "grocery supermarket market food shopping walmart target",
	CategoryOther:          "miscellaneous other general expense payment",
}

// DefaultPrototypePhrases returns the built-in phrase for every category,
// keyed by category.
func DefaultPrototypePhrases() map[Category]string {
	out := make(map[Category]string, len(defaultPhrases))
	for k, v := range defaultPhrases {
		out[k] = v
	}
	return out
}
