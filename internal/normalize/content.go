package normalize

// Article is a published health tip.
type Article struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	FeatureImageURL string `json:"featureImageUrl"`
	CreatedAt       string `json:"createdAt"`
}

// NormalizeArticle maps one raw health-tip record into an Article.
func NormalizeArticle(rec Record) Article {
	id, _ := recordID(rec)
	return Article{
		ID:              id,
		Title:           rec.str("title"),
		Description:     rec.str("description"),
		Category:        rec.str("category"),
		FeatureImageURL: rec.imageURL("featureImageUrl", "feature_image"),
		CreatedAt:       rec.str("createdAt"),
	}
}

// Advert is a dashboard-managed advertisement.
type Advert struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	ImageURL  string `json:"imageUrl"`
	CreatedAt string `json:"createdAt"`
}

// NormalizeAdvert maps one raw advert record into an Advert.
func NormalizeAdvert(rec Record) Advert {
	id, _ := recordID(rec)
	return Advert{
		ID:        id,
		Text:      rec.str("text"),
		ImageURL:  rec.imageURL("imageUrl", "image_url", "image"),
		CreatedAt: rec.str("createdAt"),
	}
}
