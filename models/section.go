package models

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"showcase-api/lookups"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShowcaseSection is a curated group of products shown on the storefront
type ShowcaseSection struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id"`
	Title        string               `json:"title" bson:"title"`
	Subtitle     string               `json:"subtitle" bson:"subtitle"`
	Type         string               `json:"type" bson:"type"`
	Products     []primitive.ObjectID `json:"products" bson:"products"` // display order of the products
	DisplayOrder int                  `json:"displayOrder" bson:"displayOrder"`
	IsActive     bool                 `json:"isActive" bson:"isActive"`
	ShowViewAll  bool                 `json:"showViewAll" bson:"showViewAll"`
	ViewAllLink  string               `json:"viewAllLink" bson:"viewAllLink"`
	TimerConfig  TimerConfig          `json:"timerConfig" bson:"timerConfig"`
	StyleConfig  StyleConfig          `json:"styleConfig" bson:"styleConfig"`
	Visibility   Visibility           `json:"visibility" bson:"visibility"`
	Meta         Meta                 `json:"meta" bson:"meta"`
	TimerStatus  string               `json:"timerStatus" bson:"-"` // computed on read
	CreatedTS    time.Time            `json:"createdAt" bson:"-"`   // CreatedTS is read from Mongo's ObjectID
	UpdatedTS    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// TimerConfig drives the optional countdown of a section
type TimerConfig struct {
	HasTimer  bool       `json:"hasTimer" bson:"hasTimer"`
	EndDate   *time.Time `json:"endDate" bson:"endDate"`
	TimerText string     `json:"timerText" bson:"timerText"`
}

// StyleConfig is presentation only
type StyleConfig struct {
	BackgroundColor string `json:"backgroundColor" bson:"backgroundColor"`
	TextColor       string `json:"textColor" bson:"textColor"`
	AccentColor     string `json:"accentColor" bson:"accentColor"`
	CardStyle       string `json:"cardStyle" bson:"cardStyle"`
}

// Visibility governs public filtering
type Visibility struct {
	IsPublic       bool                 `json:"isPublic" bson:"isPublic"`
	StartDate      *time.Time           `json:"startDate" bson:"startDate"`
	EndDate        *time.Time           `json:"endDate" bson:"endDate"`
	ShowOnHomepage bool                 `json:"showOnHomepage" bson:"showOnHomepage"`
	ShowInCategory []primitive.ObjectID `json:"showInCategory" bson:"showInCategory"`
}

// PublicSection is returned to visitors (expanded, active products only)
type PublicSection struct {
	ShowcaseSection
	Products []ProductCard `json:"products"`
}

// AdminSection is returned to the admin panel
type AdminSection struct {
	ShowcaseSection
	Products []ProductLight `json:"products"`
	Meta     AdminMeta      `json:"meta"`
}

// TimerStatusAt derives the countdown state
func TimerStatusAt(t TimerConfig, now time.Time) string {
	if !t.HasTimer || t.EndDate == nil {
		return lookups.TimerNone
	}
	if !t.EndDate.After(now) {
		return lookups.TimerExpired
	}
	return lookups.TimerActive
}

// VisibleAt reports whether visitors may see the section
func (s *ShowcaseSection) VisibleAt(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	return s.Visibility.EndDate == nil || s.Visibility.EndDate.After(now)
}

// derive sets the computed fields after reading
func (s *ShowcaseSection) derive(now time.Time) {
	s.CreatedTS = createdTS(s.ID)
	s.TimerStatus = TimerStatusAt(s.TimerConfig, now)
	if s.Products == nil {
		s.Products = []primitive.ObjectID{}
	}
}

// NullTime distinguishes "not sent" from an explicit null in patches
type NullTime struct {
	Set  bool
	Time *time.Time
}

// UnmarshalJSON is only called when the key is present
func (n *NullTime) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Time = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	n.Time = &t
	return nil
}

// SectionPatch carries the fields of a create or update request (nil = not sent)
type SectionPatch struct {
	Title        *string          `json:"title"`
	Subtitle     *string          `json:"subtitle"`
	Type         *string          `json:"type"`
	Products     *[]string        `json:"products"`
	DisplayOrder *int             `json:"displayOrder"`
	IsActive     *bool            `json:"isActive"`
	ShowViewAll  *bool            `json:"showViewAll"`
	ViewAllLink  *string          `json:"viewAllLink"`
	TimerConfig  *TimerPatch      `json:"timerConfig"`
	StyleConfig  *StylePatch      `json:"styleConfig"`
	Visibility   *VisibilityPatch `json:"visibility"`
}

// TimerPatch is merged into TimerConfig
type TimerPatch struct {
	HasTimer  *bool    `json:"hasTimer"`
	EndDate   NullTime `json:"endDate"`
	TimerText *string  `json:"timerText"`
}

// StylePatch is merged into StyleConfig
type StylePatch struct {
	BackgroundColor *string `json:"backgroundColor"`
	TextColor       *string `json:"textColor"`
	AccentColor     *string `json:"accentColor"`
	CardStyle       *string `json:"cardStyle"`
}

// VisibilityPatch is merged into Visibility
type VisibilityPatch struct {
	IsPublic       *bool     `json:"isPublic"`
	StartDate      NullTime  `json:"startDate"`
	EndDate        NullTime  `json:"endDate"`
	ShowOnHomepage *bool     `json:"showOnHomepage"`
	ShowInCategory *[]string `json:"showInCategory"`
}

// MergeTimerConfig overrides only the sent fields
func MergeTimerConfig(cur TimerConfig, p *TimerPatch) TimerConfig {
	if p == nil {
		return cur
	}
	if p.HasTimer != nil {
		cur.HasTimer = *p.HasTimer
	}
	if p.EndDate.Set {
		cur.EndDate = p.EndDate.Time
	}
	if p.TimerText != nil {
		cur.TimerText = *p.TimerText
	}
	return cur
}

// MergeStyleConfig overrides only the sent fields
func MergeStyleConfig(cur StyleConfig, p *StylePatch) StyleConfig {
	if p == nil {
		return cur
	}
	if p.BackgroundColor != nil {
		cur.BackgroundColor = *p.BackgroundColor
	}
	if p.TextColor != nil {
		cur.TextColor = *p.TextColor
	}
	if p.AccentColor != nil {
		cur.AccentColor = *p.AccentColor
	}
	if p.CardStyle != nil {
		cur.CardStyle = *p.CardStyle
	}
	return cur
}

// MergeVisibility overrides only the sent fields
func MergeVisibility(cur Visibility, p *VisibilityPatch) (Visibility, error) {
	if p == nil {
		return cur, nil
	}
	if p.IsPublic != nil {
		cur.IsPublic = *p.IsPublic
	}
	if p.StartDate.Set {
		cur.StartDate = p.StartDate.Time
	}
	if p.EndDate.Set {
		cur.EndDate = p.EndDate.Time
	}
	if p.ShowOnHomepage != nil {
		cur.ShowOnHomepage = *p.ShowOnHomepage
	}
	if p.ShowInCategory != nil {
		ids, ok := toObjectIDs(*p.ShowInCategory)
		if !ok {
			return cur, ErrInvalidID
		}
		cur.ShowInCategory = ids
	}
	return cur, nil
}

// newSection returns a section with all defaults set
func newSection() *ShowcaseSection {
	return &ShowcaseSection{
		Type:        lookups.SectionTypeGrid,
		Products:    []primitive.ObjectID{},
		IsActive:    true,
		ShowViewAll: true,
		StyleConfig: StyleConfig{CardStyle: lookups.CardStyleDefault},
		Visibility: Visibility{
			IsPublic:       true,
			ShowOnHomepage: true,
			ShowInCategory: []primitive.ObjectID{},
		},
	}
}

// applyPatch copies the sent scalars and merges the nested configs (products are handled by the caller)
func applyPatch(s *ShowcaseSection, p SectionPatch) error {
	var err error

	if p.Title != nil {
		s.Title = strings.TrimSpace(*p.Title)
	}
	if p.Subtitle != nil {
		s.Subtitle = strings.TrimSpace(*p.Subtitle)
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.DisplayOrder != nil {
		s.DisplayOrder = *p.DisplayOrder
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	if p.ShowViewAll != nil {
		s.ShowViewAll = *p.ShowViewAll
	}
	if p.ViewAllLink != nil {
		s.ViewAllLink = strings.TrimSpace(*p.ViewAllLink)
	}

	s.TimerConfig = MergeTimerConfig(s.TimerConfig, p.TimerConfig)
	s.StyleConfig = MergeStyleConfig(s.StyleConfig, p.StyleConfig)
	s.Visibility, err = MergeVisibility(s.Visibility, p.Visibility)
	if err != nil {
		return err
	}

	return validateSection(s)
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validateSection checks the complete section after defaults and patches are applied
func validateSection(s *ShowcaseSection) error {
	if s.Title == "" {
		return ErrTitleMissing
	}
	if utf8.RuneCountInString(s.Title) > 100 {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(s.Subtitle) > 200 {
		return ErrSubtitleTooLong
	}
	if !lookups.IsValid(s.Type, lookups.SectionTypes()) {
		return ErrInvalidSectionType
	}
	if s.DisplayOrder < 0 {
		return ErrNegativeDisplayOrder
	}
	if s.StyleConfig.CardStyle == "" {
		s.StyleConfig.CardStyle = lookups.CardStyleDefault
	}
	if !lookups.IsValid(s.StyleConfig.CardStyle, lookups.CardStyles()) {
		return ErrInvalidCardStyle
	}
	for _, c := range []string{s.StyleConfig.BackgroundColor, s.StyleConfig.TextColor, s.StyleConfig.AccentColor} {
		if c != "" && !hexColor.MatchString(c) {
			return ErrInvalidColor
		}
	}
	return nil
}

// toObjectIDs converts hex strings (false if any of them is malformed)
func toObjectIDs(hex []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(hex))
	for _, h := range hex {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
