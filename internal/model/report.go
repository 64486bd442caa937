package model

// GeneratedReport is the persisted record of a produced report file. Reports
// live in a table rather than process memory so the listing survives
// restarts and does not grow unbounded in-process.
type GeneratedReport struct {
	BaseModel
	ReportType  string `gorm:"size:50;not null" json:"reportType"`
	FileURL     string `gorm:"size:255;not null" json:"fileUrl"`
	ObjectName  string `gorm:"size:255" json:"-"`
	RowCount    int    `gorm:"default:0" json:"rowCount"`
	GeneratedBy uint   `gorm:"index" json:"generatedBy"`
}

func (GeneratedReport) TableName() string {
	return "generated_reports"
}
