package device

import (
	"net/url"
	"strings"
)

type Type string

const (
	Mobile  Type = "mobile"
	Desktop Type = "desktop"
)

// mobileMarkers are matched against the lower-cased user agent.
var mobileMarkers = []string{
	"mobile",
	"android",
	"iphone",
	"ipad",
	"ipod",
	"blackberry",
	"windows phone",
}

type Result struct {
	IsMobile                   bool
	IsDesktop                  bool
	ShouldShowMobileInterface  bool
	ShouldShowDesktopInterface bool
}

// Detect classifies a user agent. Anything not recognised as mobile, including an
// empty user agent, is a desktop.
func Detect(userAgent string) Type {
	low := strings.ToLower(userAgent)
	for _, m := range mobileMarkers {
		if strings.Contains(low, m) {
			return Mobile
		}
	}
	return Desktop
}

// Override reads ?device=mobile|desktop. Other values are ignored.
func Override(query url.Values) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(query.Get("device")))) {
	case Mobile:
		return Mobile, true
	case Desktop:
		return Desktop, true
	}
	return "", false
}

func Resolve(userAgent string, query url.Values) Result {
	t := Detect(userAgent)
	if o, ok := Override(query); ok {
		t = o
	}
	return Result{
		IsMobile:                   t == Mobile,
		IsDesktop:                  t == Desktop,
		ShouldShowMobileInterface:  t == Mobile,
		ShouldShowDesktopInterface: t == Desktop,
	}
}

// Path is the interface route for a device type.
func (t Type) Path() string {
	if t == Mobile {
		return "/mobile"
	}
	return "/desktop"
}
