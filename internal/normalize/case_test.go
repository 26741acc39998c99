package normalize

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeCaseWithRelations(t *testing.T) {
	payload := `{
		"data": {
			"id": 11,
			"attributes": {
				"first_name": "Bola",
				"last_name": "Adeyemi",
				"phone_number": "08012345678",
				"symptoms": ["fever"],
				"current_prescription": "paracetamol",
				"weight": "72",
				"blood_glucose": null,
				"chew": {
					"data": {
						"id": 4,
						"attributes": {"firstName": "Ngozi", "lastName": "Eze"}
					}
				},
				"casevisits": {
					"data": [
						{"id": 1, "attributes": {"date": "2024-01-10", "chews_notes": "stable", "symptoms": "fever"}},
						{"id": 2, "attributes": {"date": "2024-02-02", "blood_pressure": "120/80", "symptoms": ["fever","cough"]}}
					]
				}
			}
		}
	}`

	rec, err := DecodeRecord([]byte(payload))
	if err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}
	c := NormalizeCase(rec)

	if c.ID != 11 {
		t.Errorf("Expected id 11, got %d", c.ID)
	}
	if c.FullName != "Bola Adeyemi" {
		t.Errorf("Expected composed name, got %q", c.FullName)
	}
	if !reflect.DeepEqual(c.CurrentPrescription, []string{"paracetamol"}) {
		t.Errorf("Expected scalar prescription wrapped into list, got %v", c.CurrentPrescription)
	}
	if c.BloodGlucose != "" {
		t.Errorf("Expected empty blood glucose for null, got %q", c.BloodGlucose)
	}
	if c.Chew == nil {
		t.Fatal("Expected owning CHEW reference")
	}
	if c.Chew.ID != 4 || c.Chew.FullName != "Ngozi Eze" {
		t.Errorf("CHEW reference not flattened: %+v", c.Chew)
	}
	if len(c.Visits) != 2 {
		t.Fatalf("Expected 2 visits, got %d", len(c.Visits))
	}
	if c.Visits[0].Date != "2024-01-10" || c.Visits[0].ChewsNotes != "stable" {
		t.Errorf("First visit not mapped: %+v", c.Visits[0])
	}
	if c.Visits[1].BloodPressure != "120/80" {
		t.Errorf("Second visit not mapped: %+v", c.Visits[1])
	}
	if !reflect.DeepEqual(c.Visits[1].Symptoms, []string{"fever", "cough"}) {
		t.Errorf("Visit symptoms not coerced: %v", c.Visits[1].Symptoms)
	}
}

func TestNormalizeCaseAbsentRelationShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "Relation key missing entirely",
			payload: `{"id":1,"first_name":"Bola","last_name":"Adeyemi"}`,
		},
		{
			name:    "Relation key null",
			payload: `{"id":1,"chew":null,"casevisits":null}`,
		},
		{
			name:    "Relation key with empty envelope",
			payload: `{"id":1,"chew":{"data":null},"casevisits":{"data":[]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := DecodeRecord([]byte(tt.payload))
			if err != nil {
				t.Fatalf("Unexpected decode error: %v", err)
			}
			c := NormalizeCase(rec)
			if c.Chew != nil {
				t.Errorf("Expected nil CHEW reference, got %+v", c.Chew)
			}
			if c.Visits == nil || len(c.Visits) != 0 {
				t.Errorf("Expected empty visit list, got %v", c.Visits)
			}
		})
	}
}

func TestNormalizeCaseFixedPoint(t *testing.T) {
	payload := `{"id":11,"first_name":"Bola","last_name":"Adeyemi","symptoms":["fever"],"chew":{"data":{"id":4,"attributes":{"firstName":"Ngozi","lastName":"Eze"}}},"casevisits":{"data":[{"id":1,"attributes":{"date":"2024-01-10"}}]}}`
	rec, err := DecodeRecord([]byte(payload))
	if err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}
	first := NormalizeCase(rec)

	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Unexpected marshal error: %v", err)
	}
	rec2, err := DecodeRecord(encoded)
	if err != nil {
		t.Fatalf("Unexpected decode error on normalized record: %v", err)
	}
	second := NormalizeCase(rec2)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Case normalization is not a fixed point:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestNormalizeArticleAndAdvertDefaults(t *testing.T) {
	articleRec, err := DecodeRecord([]byte(`{"id":3,"title":"Hydration","category":null}`))
	if err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}
	article := NormalizeArticle(articleRec)
	if article.Title != "Hydration" || article.Category != "" {
		t.Errorf("Article not mapped: %+v", article)
	}
	if article.FeatureImageURL != PlaceholderAvatarURL {
		t.Errorf("Expected placeholder image, got %q", article.FeatureImageURL)
	}

	advertRec, err := DecodeRecord([]byte(`{"id":5,"text":"New clinic open","image_url":"https://cdn.example/ad.png"}`))
	if err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}
	advert := NormalizeAdvert(advertRec)
	if advert.Text != "New clinic open" || advert.ImageURL != "https://cdn.example/ad.png" {
		t.Errorf("Advert not mapped: %+v", advert)
	}
}
