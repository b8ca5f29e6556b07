package models

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SectionQuery describes a listing of sections (public or admin)
type SectionQuery struct {
	PublicAt       *time.Time // restrict to sections visible at that time (public listing)
	Type           string
	ShowOnHomepage *bool
	Search         string // title or subtitle, case-insensitive
	IsActive       *bool  // tri-state (admin)
}

// Filter translates the query to a MongoDB filter document
func (q SectionQuery) Filter() bson.D {
	filter := bson.D{}
	var ors bson.A

	if q.PublicAt != nil {
		filter = append(filter, bson.E{Key: "isActive", Value: true})
		ors = append(ors, bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "visibility.endDate", Value: bson.D{{Key: "$exists", Value: false}}}},
			bson.D{{Key: "visibility.endDate", Value: nil}},
			bson.D{{Key: "visibility.endDate", Value: bson.D{{Key: "$gt", Value: *q.PublicAt}}}},
		}}})
	}

	if q.IsActive != nil {
		filter = append(filter, bson.E{Key: "isActive", Value: *q.IsActive})
	}

	if q.Type != "" {
		filter = append(filter, bson.E{Key: "type", Value: q.Type})
	}

	if q.ShowOnHomepage != nil {
		filter = append(filter, bson.E{Key: "visibility.showOnHomepage", Value: *q.ShowOnHomepage})
	}

	if q.Search != "" {
		// user input is taken literally
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		ors = append(ors, bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: rx}},
			bson.D{{Key: "subtitle", Value: rx}},
		}}})
	}

	// a document can only hold one $or
	switch len(ors) {
	case 0:
	case 1:
		filter = append(filter, ors[0].(bson.D)[0])
	default:
		filter = append(filter, bson.E{Key: "$and", Value: ors})
	}

	return filter
}

// Matches evaluates the query in memory (same semantics as Filter)
func (q SectionQuery) Matches(s *ShowcaseSection) bool {
	if q.PublicAt != nil && !s.VisibleAt(*q.PublicAt) {
		return false
	}
	if q.IsActive != nil && s.IsActive != *q.IsActive {
		return false
	}
	if q.Type != "" && s.Type != q.Type {
		return false
	}
	if q.ShowOnHomepage != nil && s.Visibility.ShowOnHomepage != *q.ShowOnHomepage {
		return false
	}
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(s.Title), term) &&
			!strings.Contains(strings.ToLower(s.Subtitle), term) {
			return false
		}
	}
	return true
}

// SectionSort is the listing order: displayOrder asc, newest first
func SectionSort() bson.D {
	return bson.D{
		{Key: "displayOrder", Value: 1},
		{Key: "_id", Value: -1}, // the ObjectID carries the creation time
	}
}

// SortSections orders a slice like SectionSort
func SortSections(sections []ShowcaseSection) {
	sort.SliceStable(sections, func(i, j int) bool {
		a, b := sections[i], sections[j]
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.ID.Hex() > b.ID.Hex()
	})
}
