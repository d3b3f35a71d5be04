package models

// StudentRecord defines the roster entry model based on the 'students' table
type StudentRecord struct {
	ID        int64  `json:"id" db:"id" example:"1"`                       // Unique identifier, assigned at creation
	Name      string `json:"name" db:"name" example:"Ayse Yilmaz"`         // Student full name
	Address   string `json:"address" db:"address" example:"12 Oak Street"` // Postal address
	Phone     string `json:"phone" db:"phone" example:"+90 555 000 0000"`  // Contact phone
	Grade     string `json:"grade" db:"grade" example:"5"`                 // Class or grade label
	Marks     int    `json:"marks" db:"marks" example:"90"`                // Marks total
	Marksheet string `json:"marksheet" db:"marksheet" example:"marksheet.pdf"` // Attachment filename, empty when none
}
