package device

import (
	"net/url"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want Type
	}{
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15", Mobile},
		{"android", "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36", Mobile},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)", Mobile},
		{"windows phone", "Mozilla/5.0 (Windows Phone 10.0; Android 6.0.1)", Mobile},
		{"blackberry", "BlackBerry9700/5.0.0.351", Mobile},
		{"upper case", "SOMETHING MOBILE", Mobile},
		{"chrome desktop", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0", Desktop},
		{"mac safari", "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) Safari/605.1.15", Desktop},
		{"curl", "curl/8.4.0", Desktop},
		{"empty", "", Desktop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.ua); got != tt.want {
				t.Fatalf("Detect(%q)=%s want %s", tt.ua, got, tt.want)
			}
		})
	}
}

func TestOverride(t *testing.T) {
	tests := []struct {
		query  string
		want   Type
		wantOK bool
	}{
		{"device=mobile", Mobile, true},
		{"device=desktop", Desktop, true},
		{"device=Mobile", Mobile, true},
		{"device=tablet", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			got, ok := Override(q)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("got=%q,%v want=%q,%v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	iphone := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"

	r := Resolve(iphone, url.Values{})
	if !r.IsMobile || r.IsDesktop || !r.ShouldShowMobileInterface || r.ShouldShowDesktopInterface {
		t.Fatalf("mobile result=%+v", r)
	}
	r = Resolve(iphone, url.Values{"device": {"desktop"}})
	if r.IsMobile || !r.IsDesktop || !r.ShouldShowDesktopInterface {
		t.Fatalf("override result=%+v", r)
	}
	r = Resolve("", url.Values{})
	if r.IsMobile == r.IsDesktop {
		t.Fatalf("exactly one of mobile/desktop must hold: %+v", r)
	}
	if Mobile.Path() != "/mobile" || Desktop.Path() != "/desktop" {
		t.Fatalf("paths=%s,%s", Mobile.Path(), Desktop.Path())
	}
}
