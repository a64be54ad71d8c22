package core

import "github.com/RuvinSL/seo-auditor/pkg/models"

var sectionTable = map[models.PageType][]models.Category{
	models.PageTypeHome: {
		models.CategoryPerformance, models.CategoryTechnology, models.CategoryTechnicalSEO,
		models.CategorySocial, models.CategoryLocalSEO, models.CategoryUsability,
		models.CategoryLinks, models.CategorySEO, models.CategoryContent,
	},
	models.PageTypeContact: {
		models.CategoryLocalSEO, models.CategoryUsability, models.CategoryTechnology,
		models.CategorySEO, models.CategoryTechnicalSEO,
	},
	models.PageTypeAbout: {
		models.CategoryEEAT, models.CategoryContent, models.CategorySocial,
		models.CategorySEO, models.CategoryTechnicalSEO,
	},
	models.PageTypeBlog: {
		models.CategoryContent, models.CategoryEEAT, models.CategorySocial,
		models.CategorySEO, models.CategoryTechnicalSEO,
	},
	models.PageTypeProduct: {
		models.CategorySEO, models.CategoryPerformance, models.CategoryUsability,
		models.CategoryLinks, models.CategoryContent, models.CategoryTechnicalSEO,
	},
	models.PageTypeService: {
		models.CategorySEO, models.CategoryContent, models.CategoryEEAT,
		models.CategoryPerformance, models.CategoryTechnicalSEO,
	},
	models.PageTypeCategory: {
		models.CategorySEO, models.CategoryLinks, models.CategoryUsability, models.CategoryTechnicalSEO,
	},
	models.PageTypeTag: {
		models.CategorySEO, models.CategoryLinks, models.CategoryUsability, models.CategoryTechnicalSEO,
	},
	models.PageTypeArchive: {
		models.CategorySEO, models.CategoryLinks, models.CategoryUsability, models.CategoryTechnicalSEO,
	},
	models.PageTypeLegal: {
		models.CategoryUsability, models.CategoryTechnology, models.CategoryTechnicalSEO,
	},
	// Unknown pages get everything except local signals.
	models.PageTypeOther: {
		models.CategorySEO, models.CategoryContent, models.CategoryLinks,
		models.CategoryUsability, models.CategoryTechnicalSEO, models.CategoryTechnology,
		models.CategoryPerformance, models.CategorySocial, models.CategoryEEAT,
	},
}

// SectionsFor returns the ordered categories that apply to a page type.
// Unknown types get the "other" set.
func SectionsFor(pageType models.PageType) []models.Category {
	sections, ok := sectionTable[pageType]
	if !ok {
		sections = sectionTable[models.PageTypeOther]
	}
	out := make([]models.Category, len(sections))
	copy(out, sections)
	return out
}

// Applies reports whether the category runs on the page type
func Applies(pageType models.PageType, category models.Category) bool {
	for _, c := range SectionsFor(pageType) {
		if c == category {
			return true
		}
	}
	return false
}
