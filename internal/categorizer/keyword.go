package categorizer

import (
	"context"
	"strings"

	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"
)

type keywordGroup struct {
	category models.Category
	words    []string
}

// keywordChain is evaluated in order; the first group with a substring hit
// wins.
var keywordChain = []keywordGroup{
	{models.CategoryFood, []string{"restaurant", "food", "meal", "lunch", "dinner", "breakfast"}},
	{models.CategoryTransportation, []string{"uber", "taxi", "gas", "fuel", "transport"}},
	{models.CategoryShopping, []string{"store", "shopping", "amazon", "buy"}},
	{models.CategoryEntertainment, []string{"movie", "entertainment", "game", "concert"}},
	{models.CategoryBills, []string{"bill", "utility", "electric", "water", "internet"}},
	{models.CategoryHealthcare, []string{"doctor", "hospital", "pharmacy", "medical"}},
	{models.CategoryEducation, []string{"school", "education", "course", "book"}},
	{models.CategoryTravel, []string{"hotel", "flight", "travel", "vacation"}},
	{models.CategoryGroceries, []string{"grocery", "supermarket", "walmart", "target"}},
}

// KeywordCategorizer categorizes by fixed keyword lists. It needs no
// embedding backend and is used when none can be initialized.
type KeywordCategorizer struct {
	logger logging.Logger
}

// NewKeywordCategorizer creates a KeywordCategorizer.
func NewKeywordCategorizer(logger logging.Logger) *KeywordCategorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &KeywordCategorizer{logger: logger}
}

func (k *KeywordCategorizer) Name() string {
	return "Keyword"
}

func (k *KeywordCategorizer) Categorize(_ context.Context, description string) models.Category {
	lower := strings.ToLower(description)
	for _, group := range keywordChain {
		for _, w := range group.words {
			if strings.Contains(lower, w) {
				k.logger.Debug("Keyword match found",
					logging.Field{Key: logging.FieldCategory, Value: string(group.category)},
					logging.Field{Key: "keyword", Value: w})
				return group.category
			}
		}
	}
	return models.CategoryOther
}
