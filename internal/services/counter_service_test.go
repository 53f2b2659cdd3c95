package services

import (
	"testing"

	"sda-backend/internal/models"
)

func TestSummarizeCounterDay(t *testing.T) {
	logs := []models.CounterLog{
		{ID: "c1", Date: "2025-03-19", Category: models.CounterHomeCare, HasPurchased: true},
		{ID: "c2", Date: "2025-03-19", Category: models.CounterHomeCare},
		{ID: "c3", Date: "2025-03-19", Category: models.CounterKitchenCare},
	}

	summary := SummarizeCounterDay("2025-03-19", logs)
	if summary.Total != 3 {
		t.Errorf("Total = %d, want 3", summary.Total)
	}
	if summary.Purchased != 1 {
		t.Errorf("Purchased = %d, want 1", summary.Purchased)
	}
	if summary.ByCategory[models.CounterHomeCare] != 2 {
		t.Errorf("Home Care = %d, want 2", summary.ByCategory[models.CounterHomeCare])
	}
	if summary.ByCategory[models.CounterKitchenCare] != 1 {
		t.Errorf("Kitchen Care = %d, want 1", summary.ByCategory[models.CounterKitchenCare])
	}
}

func TestSummarizeCounterDayEmpty(t *testing.T) {
	summary := SummarizeCounterDay("2025-03-19", nil)
	if summary.Total != 0 || summary.Purchased != 0 {
		t.Errorf("empty summary = %+v", summary)
	}
	if summary.Logs == nil {
		t.Error("Logs is nil, want empty slice")
	}
}
