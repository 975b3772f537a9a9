package utils

import "testing"

func TestBuildImageURL(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		thumbnail string
		want      string
	}{
		{
			name:      "relative path",
			base:      "https://cdn.example.com/",
			thumbnail: "images/hotel1.jpg",
			want:      "https://cdn.example.com/images/hotel1.jpg",
		},
		{
			name:      "leading slash stripped",
			base:      "https://cdn.example.com/",
			thumbnail: "/images/hotel1.jpg",
			want:      "https://cdn.example.com/images/hotel1.jpg",
		},
		{
			name:      "base without trailing slash",
			base:      "https://cdn.example.com",
			thumbnail: "images/hotel1.jpg",
			want:      "https://cdn.example.com/images/hotel1.jpg",
		},
		{
			name:      "empty thumbnail",
			base:      "https://cdn.example.com/",
			thumbnail: "",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildImageURL(tt.base, tt.thumbnail); got != tt.want {
				t.Errorf("BuildImageURL(%q, %q) = %q, want %q", tt.base, tt.thumbnail, got, tt.want)
			}
		})
	}
}
