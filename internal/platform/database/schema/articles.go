// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ArticlesTable represents the 'articles' table
type ArticlesTable struct {
	Table
	ID              string
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	AuthorID        string
	CategoryID      string
	Published       string
	PublishedDate   string
	FeaturedImage   string
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
	IsFeatured      string
	ViewCount       string
	Tags            string
}

// Articles is the schema definition for articles
var Articles = ArticlesTable{
	Table: Table{
		Name:       "articles",
		PrimaryKey: "id",
		Fields: append([]Field{
			{Name: "id", Type: TypeInt},
			{Name: "title", Type: TypeText},
			{Name: "slug", Type: TypeText},
			{Name: "content", Type: TypeText},
			{Name: "excerpt", Type: TypeText},
			{Name: "author_id", Type: TypeInt},
			{Name: "category_id", Type: TypeInt},
			{Name: "published", Type: TypeBool, Default: false},
			{Name: "published_date", Type: TypeTimestamp},
			{Name: "featured_image", Type: TypeText},
			{Name: "meta_title", Type: TypeText},
			{Name: "meta_description", Type: TypeText},
			{Name: "meta_keywords", Type: TypeJSONText},
			{Name: "is_featured", Type: TypeBool, Default: false},
			{Name: "view_count", Type: TypeInt, Default: int64(0)},
			{Name: "tags", Type: TypeJSONText},
		}, commonFields()...),
		References: []Reference{
			{Field: "author_id", Target: "users", Label: "Author ID"},
			{Field: "category_id", Target: "categories", Label: "Category ID"},
		},
		Unique: []string{"slug"},
	},
	ID:              "id",
	Title:           "title",
	Slug:            "slug",
	Content:         "content",
	Excerpt:         "excerpt",
	AuthorID:        "author_id",
	CategoryID:      "category_id",
	Published:       "published",
	PublishedDate:   "published_date",
	FeaturedImage:   "featured_image",
	MetaTitle:       "meta_title",
	MetaDescription: "meta_description",
	MetaKeywords:    "meta_keywords",
	IsFeatured:      "is_featured",
	ViewCount:       "view_count",
	Tags:            "tags",
}

// SummaryColumns returns the columns used by list views (no body).
func (t ArticlesTable) SummaryColumns() []string {
	return t.Without(t.Content)
}
