package models

import (
	"time"

	"github.com/google/uuid"
)

// Task types recognized by the calendar and task list.
const (
	TaskWatering    = "watering"
	TaskFertilizing = "fertilizing"
	TaskHarvesting  = "harvesting"
	TaskPlanting    = "planting"
	TaskPlowing     = "plowing"
	TaskSpraying    = "spraying"
	TaskInspection  = "inspection"
	TaskMaintenance = "maintenance"
	TaskOther       = "other"
)

const DefaultTaskPriority = "normal"

var taskTypes = map[string]bool{
	TaskWatering:    true,
	TaskFertilizing: true,
	TaskHarvesting:  true,
	TaskPlanting:    true,
	TaskPlowing:     true,
	TaskSpraying:    true,
	TaskInspection:  true,
	TaskMaintenance: true,
	TaskOther:       true,
}

// ValidTaskType reports whether t is one of the recognized task type tags.
func ValidTaskType(t string) bool {
	return taskTypes[t]
}

type Task struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	// Optional link to a field; when set it must belong to the task's owner.
	FieldID *uuid.UUID `json:"fieldId,omitempty"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TaskType    string `json:"taskType"`

	// Dates are YYYY-MM-DD, times are free-form HH:MM strings from the UI.
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`

	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
	Season    string `json:"season,omitempty"`
}
