package dto

// CreateStudentRequest represents a roster add request
type CreateStudentRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Address string `json:"address" form:"address" binding:"required"`
	Phone   string `json:"phone" form:"phone" binding:"required"`
	Grade   string `json:"grade" form:"grade" binding:"required"`
	Marks   int    `json:"marks" form:"marks"`
}

// UpdateStudentRequest represents a roster update. The attachment file, when
// present, travels in the multipart form next to these fields.
type UpdateStudentRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Address string `json:"address" form:"address" binding:"required"`
	Phone   string `json:"phone" form:"phone" binding:"required"`
	Grade   string `json:"grade" form:"grade" binding:"required"`
	Marks   int    `json:"marks" form:"marks"`
}

// DashboardResponse carries the dashboard counters
type DashboardResponse struct {
	TotalStudents int64 `json:"totalStudents" example:"42"`
}
