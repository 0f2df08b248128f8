package client

import "strings"

// The upstream catalog carries no imagery, so listings are decorated with
// stock photos keyed by product name, falling back to a category default.

type keywordImage struct {
	keyword string
	image   string
}

var productImages = []keywordImage{
	{"apple", "https://images.unsplash.com/photo-1619546813926-a78fa6372cd2?auto=format&fit=crop&q=80&w=300"},
	{"banana", "https://images.unsplash.com/photo-1543218024-57a70143c369?auto=format&fit=crop&q=80&w=300"},
	{"orange", "https://images.unsplash.com/photo-1611080626919-7cf5a9dbab5b?auto=format&fit=crop&q=80&w=300"},
	{"coca-cola", "https://images.unsplash.com/photo-1581006852262-e4307cf6283a?auto=format&fit=crop&q=80&w=300"},
	{"water", "https://images.unsplash.com/photo-1548839140-29a749e1cf4d?auto=format&fit=crop&q=80&w=300"},
	{"coffee", "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?auto=format&fit=crop&q=80&w=300"},
	{"bread", "https://images.unsplash.com/photo-1608198093002-ad4e005484ec?auto=format&fit=crop&q=80&w=300"},
	{"croissant", "https://images.unsplash.com/photo-1555507036-ab1f4038808a?auto=format&fit=crop&q=80&w=300"},
	{"muffin", "https://images.unsplash.com/photo-1599019870892-11e3c43bc015?auto=format&fit=crop&q=80&w=300"},
}

var categoryImages = map[string]string{
	"fruit":  "https://images.unsplash.com/photo-1610832958506-aa56368176cf?auto=format&fit=crop&q=80&w=300",
	"drinks": "https://images.unsplash.com/photo-1527960471264-932f39eb5846?auto=format&fit=crop&q=80&w=300",
	"bakery": "https://images.unsplash.com/photo-1583743814966-8936f5b7be1a?auto=format&fit=crop&q=80&w=300",
}

const placeholderImage = "https://via.placeholder.com/150"

// imageFor picks an image for a product by name keyword, then category.
func imageFor(name, category string) string {
	lower := strings.ToLower(name)
	for _, entry := range productImages {
		if strings.Contains(lower, entry.keyword) {
			return entry.image
		}
	}
	if image, ok := categoryImages[category]; ok {
		return image
	}
	return placeholderImage
}
