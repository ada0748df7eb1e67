// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category manages the article taxonomy.

Categories form a tree through parent_id. The slug is unique among live
categories and is derived from the name when omitted on create.
*/
package category

import (
	"time"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
)

// Category is a node of the taxonomy.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ParentID    *int64    `json:"parent_id"`
	Image       string    `json:"image"`
	IsActive    bool      `json:"is_active"`
	Status      int       `json:"status"`
	IsDeleted   int       `json:"is_deleted"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

// CreateInput is the payload accepted by POST /categories.
type CreateInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,slug,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ParentID    *int64  `json:"parent_id" validate:"omitempty,gte=1"`
	Image       *string `json:"image" validate:"omitempty,url,max=500"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateInput is the payload accepted by PATCH /categories/{id}.
type UpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,slug,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ParentID    *int64  `json:"parent_id" validate:"omitempty,gte=1"`
	Image       *string `json:"image" validate:"omitempty,url,max=500"`
	IsActive    *bool   `json:"is_active"`
	Status      *int    `json:"status" validate:"omitempty,oneof=0 1"`
}

func categoryFromRecord(record store.Record) *Category {
	category := &Category{
		ID:          record.Int64(schema.Categories.ID),
		Name:        record.String(schema.Categories.Name),
		Slug:        record.String(schema.Categories.Slug),
		Description: record.String(schema.Categories.Description),
		Image:       record.String(schema.Categories.Image),
		IsActive:    record.Bool(schema.Categories.IsActive),
		Status:      int(record.Int64(schema.ColStatus)),
		IsDeleted:   int(record.Int64(schema.ColIsDeleted)),
		CreatedDate: record.Time(schema.ColCreatedDate),
		UpdatedDate: record.Time(schema.ColUpdatedDate),
	}
	if !record.IsNull(schema.Categories.ParentID) {
		parentID := record.Int64(schema.Categories.ParentID)
		category.ParentID = &parentID
	}
	return category
}

const resource = "Category"
