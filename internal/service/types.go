package service

// Task represents a single task record.
// CreatedDate and DueDate hold YYYY-MM-DD strings; empty means absent.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	CreatedDate string `json:"createdDate"`
	DueDate     string `json:"dueDate"`
}

// Draft returns a copy of the task without its id.
func (t Task) Draft() Task {
	t.ID = ""
	return t
}
