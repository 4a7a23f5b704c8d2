package extraction

import (
	"context"
	"sync/atomic"
	"time"

	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"
)

func fixedNow() time.Time {
	return time.Date(2025, 1, 20, 15, 4, 5, 0, time.UTC)
}

var today = time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

func testOptions() []Option {
	return []Option{WithClock(fixedNow), WithLogger(logging.NewMockLogger())}
}

type fixedCategorizer struct {
	category models.Category
	calls    atomic.Int32
}

func (f *fixedCategorizer) Categorize(_ context.Context, _ string) models.Category {
	f.calls.Add(1)
	return f.category
}

func (f *fixedCategorizer) Name() string { return "Fixed" }
