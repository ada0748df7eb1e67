// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CategoriesTable represents the 'categories' table
type CategoriesTable struct {
	Table
	ID          string
	Name        string
	Slug        string
	Description string
	ParentID    string
	Image       string
	IsActive    string
}

// Categories is the schema definition for categories
var Categories = CategoriesTable{
	Table: Table{
		Name:       "categories",
		PrimaryKey: "id",
		Fields: append([]Field{
			{Name: "id", Type: TypeInt},
			{Name: "name", Type: TypeText},
			{Name: "slug", Type: TypeText},
			{Name: "description", Type: TypeText},
			{Name: "parent_id", Type: TypeInt},
			{Name: "image", Type: TypeText},
			{Name: "is_active", Type: TypeBool, Default: true},
		}, commonFields()...),
		References: []Reference{
			{Field: "parent_id", Target: "categories", Label: "Parent ID"},
		},
		Unique: []string{"slug"},
	},
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	ParentID:    "parent_id",
	Image:       "image",
	IsActive:    "is_active",
}
