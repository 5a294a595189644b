package storeerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sakibahmed2/portfolio-backend/internal/errs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// generateErrorCode creates consistent "application error codes" from store errors.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	projects + InvalidID => PROJECT_INVALID_ID
//
// DOMAIN comes from the collection name, uppercased and singularized by
// dropping a trailing 'S'. These codes are meant for machines (frontend
// logic, analytics), not humans.
func generateErrorCode(collection string, code Code) string {
	if collection == "" {
		collection = "record"
	}

	domain := cases.Upper(language.English).String(singular(collection))

	return fmt.Sprintf("%s_%s", domain, code)
}

// EntityName turns a collection name into a human-readable singular noun.
//
// Example:
//
//	"projects" -> "Project"
func EntityName(collection string) string {
	if collection == "" {
		return "Record"
	}
	return humanizeText(singular(collection))
}

// singular strips one trailing "s". Good enough for skills/projects/blogs.
func singular(name string) string {
	if strings.HasSuffix(name, "s") && len(name) > 1 {
		return name[:len(name)-1]
	}
	return name
}

// humanizeText converts snake_case (or lower-ish identifiers) into Title Case.
//
// Example:
//
//	"blog_post" -> "Blog Post"
//
// It uses x/text/cases for proper title casing rules.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a store error into an application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - Otherwise: a 500 errs.HTTPError with the route's fixed message,
//     a <DOMAIN>_<ACTION> code and err as its cause
//
// Every store failure is a 500, malformed ids included; the code is what
// tells them apart.
//
// This function is intended to be called in services after a repository call fails.
func HandleError(err error, collection, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an HTTPError, don't re-wrap it.
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	return errs.NewStoreError(message, generateErrorCode(collection, ErrCode(err)), err)
}
