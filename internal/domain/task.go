package domain

// Task is a single row of the todos table.
type Task struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	Completed   bool   `gorm:"not null;default:false" json:"completed"`
}

func (Task) TableName() string {
	return "todos"
}

// TaskChanges holds the fields of an update. A nil field keeps the stored value.
type TaskChanges struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (c TaskChanges) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.Completed == nil
}

// Columns maps the present fields to their column names.
func (c TaskChanges) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 3)
	if c.Title != nil {
		cols["title"] = *c.Title
	}
	if c.Description != nil {
		cols["description"] = *c.Description
	}
	if c.Completed != nil {
		cols["completed"] = *c.Completed
	}
	return cols
}
