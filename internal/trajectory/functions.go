package trajectory

import "strings"

// FunctionBucket groups titles by engineering function, independent of
// seniority. Used for pivot detection and the function-match signal.
type FunctionBucket string

const (
	FunctionFrontend  FunctionBucket = "frontend"
	FunctionBackend   FunctionBucket = "backend"
	FunctionFullstack FunctionBucket = "fullstack"
	FunctionData      FunctionBucket = "data"
	FunctionDevOps    FunctionBucket = "devops"
	FunctionMobile    FunctionBucket = "mobile"
	FunctionSecurity  FunctionBucket = "security"
	FunctionGeneral   FunctionBucket = "general"
)

var functionKeywords = []struct {
	bucket   FunctionBucket
	keywords []string
}{
	{FunctionFullstack, []string{"fullstack", "full stack", "full-stack"}},
	{FunctionFrontend, []string{"frontend", "front end", "front-end", "ui engineer", "web developer", "react", "angular", "vue"}},
	{FunctionMobile, []string{"mobile", "ios", "android", "flutter"}},
	{FunctionSecurity, []string{"security", "appsec", "infosec"}},
	{FunctionDevOps, []string{"devops", "sre", "site reliability", "platform engineer", "infrastructure", "cloud engineer"}},
	{FunctionData, []string{"data scientist", "data engineer", "machine learning", "ml engineer", "analytics", "data science"}},
	{FunctionBackend, []string{"backend", "back end", "back-end", "api engineer", "server"}},
}

// ClassifyFunction buckets a title; titles with no function keyword land in
// general, which is never treated as a function change on its own.
func ClassifyFunction(title string) FunctionBucket {
	t := strings.ToLower(title)
	for _, fk := range functionKeywords {
		for _, kw := range fk.keywords {
			if strings.Contains(t, kw) {
				return fk.bucket
			}
		}
	}
	return FunctionGeneral
}

// functionChanged reports a move between two distinct non-general buckets
// anywhere in the sequence.
func functionChanged(titles []string) bool {
	prev := FunctionGeneral
	for _, t := range titles {
		bucket := ClassifyFunction(t)
		if bucket == FunctionGeneral {
			continue
		}
		if prev != FunctionGeneral && bucket != prev {
			return true
		}
		prev = bucket
	}
	return false
}
