package extract

import "testing"

func TestAttributes(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        map[string]string
	}{
		{
			name:        "phone listing",
			title:       "Apple iPhone 15 Pro (Space Gray, 256GB storage)",
			description: "A17 chip with 8GB RAM",
			want: map[string]string{
				"ram":     "8gb",
				"storage": "256gb",
				"model":   "iphone 15 pro",
				"color":   "space gray",
			},
		},
		{
			name:        "galaxy listing",
			title:       "Samsung Galaxy S24 Ultra",
			description: "12GB RAM, 512GB storage, midnight blue finish",
			want: map[string]string{
				"ram":     "12gb",
				"storage": "512gb",
				"model":   "galaxy s24 ultra",
				"color":   "midnight blue",
			},
		},
		{
			name:        "reversed attribute order",
			title:       "Budget laptop",
			description: "ssd 1tb with ram 16gb in silver",
			want: map[string]string{
				"ram":     "16gb",
				"storage": "1tb",
				"color":   "silver",
			},
		},
		{
			name:        "nothing extractable",
			title:       "USB cable",
			description: "braided nylon",
			want:        map[string]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Attributes(tt.title, tt.description, nil)
			if len(got) != len(tt.want) {
				t.Errorf("Attributes = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Attributes[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestAttributesKeepsExisting(t *testing.T) {
	metadata := map[string]string{"color": "rose gold"}
	got := Attributes("Black phone case", "", metadata)
	if got["color"] != "rose gold" {
		t.Errorf("existing color overwritten: %q", got["color"])
	}
}
