// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package project manages portfolio projects. Tags, authors and languages
// are JSON arrays stored as text.
package project

import (
	"time"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/pkg/convert"
)

// Project is a portfolio entry.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Published   bool      `json:"published"`
	Tags        []string  `json:"tags"`
	Source      string    `json:"source"`
	Authors     []string  `json:"authors"`
	Languages   []string  `json:"languages"`
	Status      int       `json:"status"`
	IsDeleted   int       `json:"is_deleted"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

// CreateInput is the payload accepted by POST /projects.
type CreateInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Image       *string  `json:"image" validate:"omitempty,url,max=500"`
	Published   *bool    `json:"published"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	Source      *string  `json:"source" validate:"omitempty,url,max=500"`
	Authors     []string `json:"authors" validate:"omitempty,max=20,dive,min=1,max=100"`
	Languages   []string `json:"languages" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// UpdateInput is the payload accepted by PATCH /projects/{id}.
type UpdateInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Image       *string  `json:"image" validate:"omitempty,url,max=500"`
	Published   *bool    `json:"published"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	Source      *string  `json:"source" validate:"omitempty,url,max=500"`
	Authors     []string `json:"authors" validate:"omitempty,max=20,dive,min=1,max=100"`
	Languages   []string `json:"languages" validate:"omitempty,max=20,dive,min=1,max=50"`
	Status      *int     `json:"status" validate:"omitempty,oneof=0 1"`
}

func projectFromRecord(record store.Record) *Project {
	return &Project{
		ID:          record.Int64(schema.Projects.ID),
		Name:        record.String(schema.Projects.Name),
		Description: record.String(schema.Projects.Description),
		Image:       record.String(schema.Projects.Image),
		Published:   record.Bool(schema.Projects.Published),
		Tags:        convert.ToStrings(record[schema.Projects.Tags]),
		Source:      record.String(schema.Projects.Source),
		Authors:     convert.ToStrings(record[schema.Projects.Authors]),
		Languages:   convert.ToStrings(record[schema.Projects.Languages]),
		Status:      int(record.Int64(schema.ColStatus)),
		IsDeleted:   int(record.Int64(schema.ColIsDeleted)),
		CreatedDate: record.Time(schema.ColCreatedDate),
		UpdatedDate: record.Time(schema.ColUpdatedDate),
	}
}

const resource = "Project"
