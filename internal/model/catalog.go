package model

// DocType is a document category referenced by upload subtasks through
// config.doc_type_id.
type DocType struct {
	BaseModel
	Name   string `gorm:"size:200;not null" json:"name"`
	Code   string `gorm:"size:100;uniqueIndex" json:"code"`
	Status int8   `gorm:"default:1" json:"status"`
}

// TableName maps the model to its table.
func (DocType) TableName() string {
	return "erp_doc_type"
}

// EmailTemplate is a library email referenced by email subtasks through
// config.email_template_id. Subject and Content may carry `{{key}}`
// placeholders like any document.
type EmailTemplate struct {
	BaseModel
	Name    string `gorm:"size:200;not null" json:"name"`
	Subject string `gorm:"size:500" json:"subject"`
	Content string `gorm:"type:longtext" json:"content"`
	Status  int8   `gorm:"default:1" json:"status"`
}

// TableName maps the model to its table.
func (EmailTemplate) TableName() string {
	return "erp_email_template"
}
