package query

import (
	"context"
	"log"
	"strings"

	"github.com/mvp-joe/pmdo-query/internal/catalog"
	"github.com/mvp-joe/pmdo-query/internal/classdoc"
)

// ClassList is every type declared in one category's files.
type ClassList struct {
	Category    string                     `json:"category"`
	Description string                     `json:"description"`
	Files       []string                   `json:"files"`
	KeyTypes    []string                   `json:"keyTypes,omitempty"` // the category's search patterns
	Classes     []classdoc.ClassDescriptor `json:"classes"`
}

// ListClasses indexes the declared files of a category, in declared order.
func (e *Engine) ListClasses(ctx context.Context, category string) (*ClassList, error) {
	cat, err := e.category(category)
	if err != nil {
		return nil, err
	}

	classes, err := e.classesIn(ctx, cat)
	if err != nil {
		return nil, err
	}
	return &ClassList{
		Category:    cat.Name,
		Description: cat.Description,
		Files:       cat.Files,
		KeyTypes:    cat.SearchPatterns,
		Classes:     classes,
	}, nil
}

// ClassDocs finds a type by case-insensitive name, scanning each category's
// declared files in registry order. The first match wins.
func (e *Engine) ClassDocs(ctx context.Context, typeName string) (*classdoc.ClassDescriptor, bool, error) {
	typeName = strings.TrimSpace(typeName)
	if typeName == "" {
		return nil, false, userErrorf("class name must not be empty")
	}

	for _, cat := range e.registry.All() {
		classes, err := e.classesIn(ctx, cat)
		if err != nil {
			return nil, false, err
		}
		for i := range classes {
			if strings.EqualFold(classes[i].Name, typeName) {
				return &classes[i], true, nil
			}
		}
	}
	return nil, false, nil
}

// classesIn parses every file a category declares. A file that cannot be
// read or parsed contributes nothing; only grammar failure is returned.
func (e *Engine) classesIn(ctx context.Context, cat catalog.Category) ([]classdoc.ClassDescriptor, error) {
	files, err := cat.ResolveFiles(e.extractor.Paths().DataDir)
	if err != nil {
		log.Printf("query: %v", err)
		return []classdoc.ClassDescriptor{}, nil
	}

	classes := []classdoc.ClassDescriptor{}
	for _, path := range files {
		found, err := e.classes.ParseFile(ctx, path)
		if err != nil {
			return nil, err
		}
		for _, c := range found {
			c.FilePath = e.extractor.Relative(c.FilePath)
			classes = append(classes, c)
		}
	}
	return classes, nil
}
