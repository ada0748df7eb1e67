// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package article manages blog articles.

An article belongs to an author (users) and optionally a category. The slug
is unique among live articles and derived from the title when omitted.
Listings omit the content column; the detail view carries the content plus
author and category summaries.

# Ownership

Any authenticated user may create an article, authored by themselves unless
an admin names another author. Only the author or an admin may update or
delete it.
*/
package article

import (
	"time"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/pkg/convert"
)

// Article is a stored article. Content is empty in listings.
type Article struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content,omitempty"`
	Excerpt         string     `json:"excerpt"`
	AuthorID        *int64     `json:"author_id"`
	CategoryID      *int64     `json:"category_id"`
	Published       bool       `json:"published"`
	PublishedDate   *time.Time `json:"published_date"`
	FeaturedImage   string     `json:"featured_image"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	MetaKeywords    []string   `json:"meta_keywords"`
	IsFeatured      bool       `json:"is_featured"`
	ViewCount       int64      `json:"view_count"`
	Tags            []string   `json:"tags"`
	Status          int        `json:"status"`
	IsDeleted       int        `json:"is_deleted"`
	CreatedDate     time.Time  `json:"created_date"`
	UpdatedDate     time.Time  `json:"updated_date"`
}

// AuthorSummary is the author embedded in an article detail.
type AuthorSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CategorySummary is the category embedded in an article detail.
type CategorySummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Detail is the single-article view.
type Detail struct {
	*Article
	Author   *AuthorSummary   `json:"author"`
	Category *CategorySummary `json:"category"`
}

// CreateInput is the payload accepted by POST /articles.
type CreateInput struct {
	Title           string     `json:"title" validate:"required,min=3,max=200"`
	Slug            *string    `json:"slug" validate:"omitempty,slug,max=200"`
	Content         string     `json:"content" validate:"required"`
	Excerpt         *string    `json:"excerpt" validate:"omitempty,max=500"`
	AuthorID        *int64     `json:"author_id" validate:"omitempty,gte=1"`
	CategoryID      *int64     `json:"category_id" validate:"omitempty,gte=1"`
	Published       *bool      `json:"published"`
	PublishedDate   *time.Time `json:"published_date"`
	FeaturedImage   *string    `json:"featured_image" validate:"omitempty,url,max=500"`
	MetaTitle       *string    `json:"meta_title" validate:"omitempty,max=200"`
	MetaDescription *string    `json:"meta_description" validate:"omitempty,max=500"`
	MetaKeywords    []string   `json:"meta_keywords" validate:"omitempty,max=20,dive,min=1,max=50"`
	IsFeatured      *bool      `json:"is_featured"`
	Tags            []string   `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// UpdateInput is the payload accepted by PATCH /articles/{id}.
type UpdateInput struct {
	Title           *string    `json:"title" validate:"omitempty,min=3,max=200"`
	Slug            *string    `json:"slug" validate:"omitempty,slug,max=200"`
	Content         *string    `json:"content" validate:"omitempty,min=1"`
	Excerpt         *string    `json:"excerpt" validate:"omitempty,max=500"`
	AuthorID        *int64     `json:"author_id" validate:"omitempty,gte=1"`
	CategoryID      *int64     `json:"category_id" validate:"omitempty,gte=1"`
	Published       *bool      `json:"published"`
	PublishedDate   *time.Time `json:"published_date"`
	FeaturedImage   *string    `json:"featured_image" validate:"omitempty,url,max=500"`
	MetaTitle       *string    `json:"meta_title" validate:"omitempty,max=200"`
	MetaDescription *string    `json:"meta_description" validate:"omitempty,max=500"`
	MetaKeywords    []string   `json:"meta_keywords" validate:"omitempty,max=20,dive,min=1,max=50"`
	IsFeatured      *bool      `json:"is_featured"`
	Tags            []string   `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	Status          *int       `json:"status" validate:"omitempty,oneof=0 1"`
}

// # Record Mapping

func articleFromRecord(record store.Record) *Article {
	article := &Article{
		ID:              record.Int64(schema.Articles.ID),
		Title:           record.String(schema.Articles.Title),
		Slug:            record.String(schema.Articles.Slug),
		Content:         record.String(schema.Articles.Content),
		Excerpt:         record.String(schema.Articles.Excerpt),
		AuthorID:        optionalInt(record, schema.Articles.AuthorID),
		CategoryID:      optionalInt(record, schema.Articles.CategoryID),
		Published:       record.Bool(schema.Articles.Published),
		FeaturedImage:   record.String(schema.Articles.FeaturedImage),
		MetaTitle:       record.String(schema.Articles.MetaTitle),
		MetaDescription: record.String(schema.Articles.MetaDescription),
		MetaKeywords:    convert.ToStrings(record[schema.Articles.MetaKeywords]),
		IsFeatured:      record.Bool(schema.Articles.IsFeatured),
		ViewCount:       record.Int64(schema.Articles.ViewCount),
		Tags:            convert.ToStrings(record[schema.Articles.Tags]),
		Status:          int(record.Int64(schema.ColStatus)),
		IsDeleted:       int(record.Int64(schema.ColIsDeleted)),
		CreatedDate:     record.Time(schema.ColCreatedDate),
		UpdatedDate:     record.Time(schema.ColUpdatedDate),
	}
	if !record.IsNull(schema.Articles.PublishedDate) {
		publishedDate := record.Time(schema.Articles.PublishedDate)
		article.PublishedDate = &publishedDate
	}
	return article
}

func optionalInt(record store.Record, key string) *int64 {
	if record.IsNull(key) {
		return nil
	}
	value := record.Int64(key)
	return &value
}

// summaryColumns feed the embedded author and category views.
var (
	authorColumns   = []string{schema.Users.ID, schema.Users.Name, schema.Users.Email}
	categoryColumns = []string{schema.Categories.ID, schema.Categories.Name, schema.Categories.Slug}
)

const resource = "Article"
