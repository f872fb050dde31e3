package domain

import "time"

// Field names a mutable task field subject to diffing and auditing.
type Field string

const (
	FieldName           Field = "name"
	FieldStationNumber  Field = "stationNumber"
	FieldStationAddress Field = "stationAddress"
	FieldDescription    Field = "description"
	FieldStatus         Field = "status"
	FieldPriority       Field = "priority"
	FieldDueDate        Field = "dueDate"
	FieldPoints         Field = "points"
	FieldLatitude       Field = "latitude"
	FieldLongitude      Field = "longitude"
	FieldTotalCost      Field = "totalCost"
	FieldExecutorID     Field = "executorId"
	FieldExecutorName   Field = "executorName"
	FieldExecutorEmail  Field = "executorEmail"
)

// MutableFields is the fixed allow-list of fields a patch may touch, in the
// order they are diffed and audited.
var MutableFields = []Field{
	FieldName,
	FieldStationNumber,
	FieldStationAddress,
	FieldDescription,
	FieldStatus,
	FieldPriority,
	FieldDueDate,
	FieldPoints,
	FieldLatitude,
	FieldLongitude,
	FieldTotalCost,
	FieldExecutorID,
	FieldExecutorName,
	FieldExecutorEmail,
}

// LocationPoint is one named point of a task's location list.
type LocationPoint struct {
	Name        string `json:"name"`
	Coordinates string `json:"coordinates"`
	Address     string `json:"address"`
}

// Task represents a field work order tied to a base station.
type Task struct {
	ID        string
	OrgID     string
	ProjectID string
	Code      string // short human-facing code, 5 chars

	Name           string
	StationNumber  string
	StationAddress string
	Description    string
	Status         TaskStatus
	Priority       TaskPriority
	DueDate        *time.Time
	Points         []LocationPoint
	Latitude       *float64
	Longitude      *float64
	TotalCost      *float64
	ExecutorID     *string
	ExecutorName   *string
	ExecutorEmail  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasExecutor reports whether an executor is currently assigned.
func (t *Task) HasExecutor() bool {
	return t.ExecutorID != nil && *t.ExecutorID != ""
}

// FieldValue returns the current value of a mutable field for diffing.
// Unset optional fields and empty strings yield nil so that every "empty"
// representation compares equal.
func (t *Task) FieldValue(f Field) any {
	switch f {
	case FieldName:
		return strOrNil(t.Name)
	case FieldStationNumber:
		return strOrNil(t.StationNumber)
	case FieldStationAddress:
		return strOrNil(t.StationAddress)
	case FieldDescription:
		return strOrNil(t.Description)
	case FieldStatus:
		return strOrNil(string(t.Status))
	case FieldPriority:
		return strOrNil(string(t.Priority))
	case FieldDueDate:
		if t.DueDate == nil {
			return nil
		}
		return *t.DueDate
	case FieldPoints:
		if len(t.Points) == 0 {
			return nil
		}
		return t.Points
	case FieldLatitude:
		return floatOrNil(t.Latitude)
	case FieldLongitude:
		return floatOrNil(t.Longitude)
	case FieldTotalCost:
		return floatOrNil(t.TotalCost)
	case FieldExecutorID:
		return ptrOrNil(t.ExecutorID)
	case FieldExecutorName:
		return ptrOrNil(t.ExecutorName)
	case FieldExecutorEmail:
		return ptrOrNil(t.ExecutorEmail)
	}
	return nil
}

// ApplyChange mutates the task in memory with a diffed value. A nil value
// clears the field. Used to return the canonical record without a re-read.
func (t *Task) ApplyChange(f Field, v any) {
	switch f {
	case FieldName:
		t.Name, _ = v.(string)
	case FieldStationNumber:
		t.StationNumber, _ = v.(string)
	case FieldStationAddress:
		t.StationAddress, _ = v.(string)
	case FieldDescription:
		t.Description, _ = v.(string)
	case FieldStatus:
		s, _ := v.(string)
		t.Status = TaskStatus(s)
	case FieldPriority:
		s, _ := v.(string)
		t.Priority = TaskPriority(s)
	case FieldDueDate:
		if d, ok := v.(time.Time); ok {
			t.DueDate = &d
		} else {
			t.DueDate = nil
		}
	case FieldPoints:
		if pts, ok := v.([]LocationPoint); ok {
			t.Points = pts
		} else {
			t.Points = nil
		}
	case FieldLatitude:
		t.Latitude = toFloatPtr(v)
	case FieldLongitude:
		t.Longitude = toFloatPtr(v)
	case FieldTotalCost:
		t.TotalCost = toFloatPtr(v)
	case FieldExecutorID:
		t.ExecutorID = toStrPtr(v)
	case FieldExecutorName:
		t.ExecutorName = toStrPtr(v)
	case FieldExecutorEmail:
		t.ExecutorEmail = toStrPtr(v)
	}
}

func strOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func ptrOrNil(p *string) any {
	if p == nil || *p == "" {
		return nil
	}
	return *p
}

func floatOrNil(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func toFloatPtr(v any) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}

func toStrPtr(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}
