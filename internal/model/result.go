package model

// DrawResult is the outcome of one draw attempt, handed straight to the caller.
type DrawResult struct {
	DepartmentName string        `json:"department_name,omitempty"`
	DepartmentID   string        `json:"department_id,omitempty"`
	SpecialtyType  SpecialtyType `json:"specialty_type,omitempty"`
	Message        string        `json:"message,omitempty"`
	Success        bool          `json:"success"`
}

// SuccessResult reports that dept was drawn for specialty.
func SuccessResult(dept Department, specialty SpecialtyType) DrawResult {
	return DrawResult{
		Success:        true,
		DepartmentName: dept.Name,
		DepartmentID:   dept.ID,
		SpecialtyType:  specialty,
	}
}

// FailureResult reports a draw that could not be made.
func FailureResult(message string) DrawResult {
	return DrawResult{Message: message}
}
