package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tarcanfarm/farm-backend/internal/models"
)

var testCoords = json.RawMessage(`{"type":"Polygon","coordinates":[[[32.5,37.9],[32.6,37.9],[32.6,38.0],[32.5,37.9]]]}`)

func TestMemoryFieldCRUD(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	owner := uuid.New()

	created, err := m.CreateField(ctx, NewField{
		UserID:      owner,
		Name:        "Kuzey Tarla",
		Coordinates: testCoords,
	})
	if err != nil {
		t.Fatalf("CreateField: %v", err)
	}
	if created.Unit != models.DefaultFieldUnit {
		t.Errorf("unit = %q, want default %q", created.Unit, models.DefaultFieldUnit)
	}
	if created.Color != models.DefaultFieldColor {
		t.Errorf("color = %q, want default %q", created.Color, models.DefaultFieldColor)
	}

	got, err := m.GetField(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Name != "Kuzey Tarla" {
		t.Fatalf("GetField = %+v", got)
	}

	name := "Güney Tarla"
	updated, err := m.UpdateField(ctx, created.ID, FieldUpdate{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != name {
		t.Errorf("name = %q after update", updated.Name)
	}
	if updated.Unit != models.DefaultFieldUnit {
		t.Error("update clobbered an untouched column")
	}

	ok, err := m.DeleteField(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteField = %v, %v", ok, err)
	}
	ok, err = m.DeleteField(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("second delete reported a deletion")
	}
	if got, _ := m.GetField(ctx, created.ID); got != nil {
		t.Error("field still present after delete")
	}
}

func TestMemoryDeleteFieldCascades(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	owner := uuid.New()

	field, err := m.CreateField(ctx, NewField{UserID: owner, Name: "Tarla", Coordinates: testCoords})
	if err != nil {
		t.Fatal(err)
	}
	task, err := m.CreateTask(ctx, NewTask{
		UserID: owner, FieldID: &field.ID,
		Title: "Sulama", TaskType: models.TaskWatering, StartDate: "2026-09-01",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.CreateReading(ctx, NewReading{FieldID: field.ID, PlantHealth: models.PlantHealthGood}); err != nil {
		t.Fatal(err)
	}

	ok, err := m.DeleteField(ctx, field.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteField = %v, %v", ok, err)
	}

	// The task survives with the reference cleared.
	got, err := m.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("task deleted with its field")
	}
	if got.FieldID != nil {
		t.Errorf("task still references deleted field %s", *got.FieldID)
	}

	// Readings go with the field.
	reading, err := m.LatestReading(ctx, field.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reading != nil {
		t.Errorf("reading survived the field: %+v", reading)
	}
}

func TestMemoryGetFieldAbsent(t *testing.T) {
	m := NewMemory()
	got, err := m.GetField(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("absence must not be an error: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v for an unknown id", got)
	}
}

func TestMemoryFieldsScopedByUser(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	ayse, mehmet := uuid.New(), uuid.New()

	for _, n := range []NewField{
		{UserID: ayse, Name: "A1", Coordinates: testCoords},
		{UserID: ayse, Name: "A2", Coordinates: testCoords},
		{UserID: mehmet, Name: "M1", Coordinates: testCoords},
	} {
		if _, err := m.CreateField(ctx, n); err != nil {
			t.Fatal(err)
		}
	}

	fields, err := m.GetFieldsByUser(ctx, ayse)
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 2 {
		t.Fatalf("got %d fields for ayse, want 2", len(fields))
	}
	for _, f := range fields {
		if f.UserID != ayse {
			t.Errorf("field %q belongs to %s", f.Name, f.UserID)
		}
	}

	empty, err := m.GetFieldsByUser(ctx, uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("unknown user: got %v, want empty slice", empty)
	}
}

func TestMemoryConcurrentFieldUpdatesMerge(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, err := m.CreateField(ctx, NewField{UserID: uuid.New(), Name: "Tarla", Coordinates: testCoords})
	if err != nil {
		t.Fatal(err)
	}

	name := "Renamed"
	notes := "sulama notu"
	if _, err := m.UpdateField(ctx, created.ID, FieldUpdate{Name: &name}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.UpdateField(ctx, created.ID, FieldUpdate{Notes: &notes}); err != nil {
		t.Fatal(err)
	}

	got, err := m.GetField(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != name || got.Notes != notes {
		t.Errorf("updates did not merge: name=%q notes=%q", got.Name, got.Notes)
	}
}

func TestMemoryTaskDefaultsAndListing(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	owner := uuid.New()

	field, err := m.CreateField(ctx, NewField{UserID: owner, Name: "Tarla", Coordinates: testCoords})
	if err != nil {
		t.Fatal(err)
	}

	late, err := m.CreateTask(ctx, NewTask{
		UserID: owner, FieldID: &field.ID,
		Title: "Hasat", TaskType: models.TaskHarvesting, StartDate: "2026-09-20",
	})
	if err != nil {
		t.Fatal(err)
	}
	early, err := m.CreateTask(ctx, NewTask{
		UserID: owner,
		Title:  "Sulama", TaskType: models.TaskWatering, StartDate: "2026-09-01",
	})
	if err != nil {
		t.Fatal(err)
	}
	if early.Priority != models.DefaultTaskPriority {
		t.Errorf("priority = %q, want default", early.Priority)
	}

	tasks, err := m.GetTasksByUser(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != early.ID || tasks[1].ID != late.ID {
		t.Error("tasks not ordered by start date")
	}

	byField, err := m.GetTasksByField(ctx, field.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(byField) != 1 || byField[0].ID != late.ID {
		t.Errorf("field tasks = %+v, want only the linked task", byField)
	}
}

func TestMemoryTaskCompleteToggle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	task, err := m.CreateTask(ctx, NewTask{
		UserID: uuid.New(), Title: "İlaçlama", TaskType: models.TaskSpraying, StartDate: "2026-09-05",
	})
	if err != nil {
		t.Fatal(err)
	}
	if task.Completed {
		t.Fatal("new task starts completed")
	}

	done := true
	updated, err := m.UpdateTask(ctx, task.ID, TaskUpdate{Completed: &done})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Completed {
		t.Error("completed flag did not flip")
	}
	if updated.Title != task.Title {
		t.Error("toggle clobbered the title")
	}
}

func TestMemoryLatestReading(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	fieldID := uuid.New()

	if got, err := m.LatestReading(ctx, fieldID); err != nil || got != nil {
		t.Fatalf("no readings: got %+v, %v", got, err)
	}

	first, err := m.CreateReading(ctx, NewReading{FieldID: fieldID, PlantHealth: models.PlantHealthPoor})
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.CreateReading(ctx, NewReading{FieldID: fieldID, PlantHealth: models.PlantHealthGood})
	if err != nil {
		t.Fatal(err)
	}
	// The memory store stamps time.Now(); force distinct timestamps.
	m.mu.Lock()
	h := m.health[second.ID]
	h.Timestamp = m.health[first.ID].Timestamp.Add(time.Minute)
	m.health[second.ID] = h
	m.mu.Unlock()

	latest, err := m.LatestReading(ctx, fieldID)
	if err != nil {
		t.Fatal(err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Errorf("latest = %+v, want the newer reading", latest)
	}

	byField, err := m.LatestByField(ctx, []uuid.UUID{fieldID, uuid.New()})
	if err != nil {
		t.Fatal(err)
	}
	if len(byField) != 1 {
		t.Fatalf("got %d entries, want 1", len(byField))
	}
	if byField[fieldID].ID != second.ID {
		t.Error("LatestByField returned a stale reading")
	}
}

func TestMemoryWeatherHistory(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	owner := uuid.New()

	if _, err := m.AppendWeather(ctx, NewWeather{UserID: owner, Location: "37.9,32.5", Data: json.RawMessage(`{"t":1}`)}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AppendWeather(ctx, NewWeather{UserID: uuid.New(), Location: "41.0,28.9", Data: json.RawMessage(`{"t":2}`)}); err != nil {
		t.Fatal(err)
	}

	history, err := m.WeatherByUser(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Location != "37.9,32.5" {
		t.Errorf("history = %+v, want only the owner's entry", history)
	}
}
