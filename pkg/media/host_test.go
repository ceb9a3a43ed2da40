package media

import "testing"

func TestKeyFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://media.example.com/school/activities/abc123.jpg", "abc123"},
		{"https://media.example.com/docs/quyet-dinh-2024.pdf", "quyet-dinh-2024"},
		{"https://media.example.com/img/photo.v2.png", "photo.v2"},
		{"https://media.example.com/img/noext", "noext"},
		{"https://media.example.com/img/banner.jpg?token=xyz", "banner"},
		{"https://media.example.com/img/banner.jpg#top", "banner"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := KeyFromURL(tc.url); got != tc.want {
			t.Fatalf("KeyFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
