package model

// DocumentTemplate is a rich-text document with `{{key}}` placeholders.
// Content is stored in the flat form of the content contract: HTML with
// literal placeholders, never decorated variable elements.
type DocumentTemplate struct {
	BaseModel
	Name     string `gorm:"size:200;not null" json:"name"`
	Category string `gorm:"size:100" json:"category"`
	Content  string `gorm:"type:longtext" json:"content"`
}

// TableName maps the model to its table.
func (DocumentTemplate) TableName() string {
	return "erp_document_template"
}

// SystemVariable is one registry entry of the application-defined variable
// set. Keys in this table are the "system" keys; anything else found in a
// document is a user-defined variable.
type SystemVariable struct {
	BaseModel
	// Stored as var_key: "key" is a reserved word on MySQL.
	Key    string `gorm:"column:var_key;size:100;not null;uniqueIndex" json:"key"`
	Label  string `gorm:"size:200" json:"label"`
	Entity string `gorm:"size:100" json:"entity"` // source entity, e.g. client, property
	Status int8   `gorm:"default:1" json:"status"`
}

// TableName maps the model to its table.
func (SystemVariable) TableName() string {
	return "erp_system_variable"
}
