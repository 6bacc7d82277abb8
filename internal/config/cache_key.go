package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StaffSessionKey returns the cache key for a staff user's login session.
func (r *CacheKeyStruct) StaffSessionKey(userID int) string {
	return fmt.Sprintf("session:staff:%d", userID)
}

// ChartTypeGradeKey returns the cache key for the offenses-by-type-and-grade chart.
func (r *CacheKeyStruct) ChartTypeGradeKey() string {
	return "chart:offenses_by_type_grade"
}

// ChartGenderGradeKey returns the cache key for the offenses-by-gender-and-grade chart.
func (r *CacheKeyStruct) ChartGenderGradeKey() string {
	return "chart:offenses_by_gender_grade"
}

var CacheKey = NewCacheKeyStruct()
