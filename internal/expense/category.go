package expense

import (
	"fmt"
	"strings"
)

// CategoryType is a spending bucket
type CategoryType int

const (
	Rent CategoryType = iota
	Groceries
	Food
	Shopping
	Travel
	Other
)

// Categories lists every bucket in report order
var Categories = []CategoryType{Rent, Groceries, Food, Shopping, Travel, Other}

func (c CategoryType) String() string {
	if c < Rent || c > Other {
		return fmt.Sprintf("CategoryType(%d)", int(c))
	}
	return [...]string{"Rent", "Groceries", "Food", "Shopping", "Travel", "Other"}[c]
}

func (c CategoryType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Rule assigns a category when the description contains any keyword
type Rule struct {
	Type     CategoryType
	Keywords []string
}

// DefaultRules are checked in order; the first match wins
var DefaultRules = []Rule{
	{Type: Rent, Keywords: []string{"rent"}},
	{Type: Groceries, Keywords: []string{"grocery", "supermarket"}},
	{Type: Food, Keywords: []string{"restaurant", "food", "cafe", "pizza", "coffee"}},
	{Type: Shopping, Keywords: []string{"amazon", "flipkart", "shopping", "mall"}},
	{Type: Travel, Keywords: []string{"uber", "flight", "air", "train", "hotel", "travel"}},
}

// Classifier maps descriptions to categories by keyword
type Classifier struct {
	Rules []Rule
}

// NewClassifier returns a classifier using DefaultRules
func NewClassifier() *Classifier {
	return &Classifier{Rules: DefaultRules}
}

// Classify matches description case-insensitively against the rules.
// Keywords match substrings, so "airtel" counts as travel.
func (c *Classifier) Classify(description string) CategoryType {
	desc := strings.ToLower(description)
	for _, rule := range c.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				return rule.Type
			}
		}
	}
	return Other
}

// Category accumulates the transactions of one bucket
type Category struct {
	Type  CategoryType `json:"category"`
	Total Money        `json:"total"`
	Count int          `json:"count"`
}

func (c *Category) Credit(amount Money) {
	c.Total = c.Total.Add(amount)
	c.Count++
}
