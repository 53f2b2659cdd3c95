package services

import (
	"encoding/json"
	"strings"
	"testing"

	"sda-backend/internal/models"
)

func TestParseSnapshotDefaultsMissingKeys(t *testing.T) {
	snapshot, err := ParseSnapshot([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	if snapshot.Sales == nil || len(snapshot.Sales) != 0 {
		t.Errorf("Sales = %v, want empty slice", snapshot.Sales)
	}
	if snapshot.CounterLogs == nil || len(snapshot.CounterLogs) != 0 {
		t.Errorf("CounterLogs = %v, want empty slice", snapshot.CounterLogs)
	}
	if snapshot.Profile != nil {
		t.Errorf("Profile = %v, want nil", snapshot.Profile)
	}
}

func TestParseSnapshotRoundTrip(t *testing.T) {
	original := models.Snapshot{
		Profile: &models.UserProfile{Name: "Asha", EmpID: "E42"},
		Sales: []models.InteractionRecord{
			sale("s1", "2025-03-19", "OTG", models.AttendedByMe, 1, 500),
			enquiry("e1", "2025-03-19", "Geyser", models.AttendedByStaff, 2),
		},
		CounterLogs: []models.CounterLog{
			{ID: "c1", Date: "2025-03-19", Category: models.CounterHomeCare},
		},
	}
	payload, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	parsed, err := ParseSnapshot(payload)
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	if len(parsed.Sales) != 2 || parsed.Sales[0].ID != "s1" || parsed.Sales[1].ID != "e1" {
		t.Errorf("sales order or content lost: %v", parsed.Sales)
	}
	if parsed.Sales[0].Revenue() != 500 {
		t.Errorf("revenue lost in round trip: %v", parsed.Sales[0].Revenue())
	}
	if len(parsed.CounterLogs) != 1 || parsed.CounterLogs[0].ID != "c1" {
		t.Errorf("counter logs lost: %v", parsed.CounterLogs)
	}
	if parsed.Profile == nil || parsed.Profile.Name != "Asha" {
		t.Errorf("profile lost: %v", parsed.Profile)
	}
}

func TestParseSnapshotRejections(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"not json", `{"sales": [`, "not valid JSON"},
		{"record without id", `{"sales":[{"date":"2025-03-19","interaction_type":"Sale","sale":{"quantity":1,"price":10},"attended_by":"Me"}]}`, "no id"},
		{"duplicate ids", `{"sales":[
			{"id":"x","date":"2025-03-19","interaction_type":"Sale","sale":{"quantity":1,"price":10},"attended_by":"Me"},
			{"id":"x","date":"2025-03-19","interaction_type":"Sale","sale":{"quantity":1,"price":10},"attended_by":"Me"}]}`, "duplicate"},
		{"bad date", `{"sales":[{"id":"x","date":"19/03/2025","interaction_type":"Sale","sale":{"quantity":1,"price":10},"attended_by":"Me"}]}`, "unparsable date"},
		{"sale missing detail", `{"sales":[{"id":"x","date":"2025-03-19","interaction_type":"Sale","attended_by":"Me"}]}`, "missing sale detail"},
		{"counter log without category", `{"counter_logs":[{"id":"c1","date":"2025-03-19"}]}`, "no category"},
		{"counter log bad date", `{"counter_logs":[{"id":"c1","date":"soon","category":"Home Care"}]}`, "unparsable date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnapshot([]byte(tt.payload))
			if err == nil {
				t.Fatal("ParseSnapshot succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestExportFilenameIsDated(t *testing.T) {
	name := ExportFilename()
	if !strings.HasPrefix(name, "sda-pro-backup-") || !strings.HasSuffix(name, ".json") {
		t.Errorf("ExportFilename = %q", name)
	}
}
