package models

// Category groups questions and owns the set of tags selectable for them.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Tags []Tag  `gorm:"many2many:category_tags" json:"tags,omitempty"`
}

// Tag labels questions. The same tag may belong to several categories.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
