// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ProjectsTable represents the 'projects' table
type ProjectsTable struct {
	Table
	ID          string
	Name        string
	Description string
	Image       string
	Published   string
	Tags        string
	Source      string
	Authors     string
	Languages   string
}

// Projects is the schema definition for projects
var Projects = ProjectsTable{
	Table: Table{
		Name:       "projects",
		PrimaryKey: "id",
		Fields: append([]Field{
			{Name: "id", Type: TypeInt},
			{Name: "name", Type: TypeText},
			{Name: "description", Type: TypeText},
			{Name: "image", Type: TypeText},
			{Name: "published", Type: TypeBool, Default: false},
			{Name: "tags", Type: TypeJSONText},
			{Name: "source", Type: TypeText},
			{Name: "authors", Type: TypeJSONText},
			{Name: "languages", Type: TypeJSONText},
		}, commonFields()...),
	},
	ID:          "id",
	Name:        "name",
	Description: "description",
	Image:       "image",
	Published:   "published",
	Tags:        "tags",
	Source:      "source",
	Authors:     "authors",
	Languages:   "languages",
}
