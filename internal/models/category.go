package models

import "strings"

type Category string

const (
	CategoryConcert    Category = "Concert"
	CategoryWorkshop   Category = "Workshop"
	CategoryConference Category = "Conference"
	CategoryTheater    Category = "Theater"
)

var Categories = []Category{CategoryConcert, CategoryWorkshop, CategoryConference, CategoryTheater}

// ParseCategory matches s against the known categories, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "category", Message: "must be one of Concert, Workshop, Conference, Theater"}
}
