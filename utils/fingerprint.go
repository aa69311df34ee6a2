package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	ua "github.com/mileusna/useragent"
)

// DeviceFingerprint derives an opaque key identifying the requesting device,
// used to stop one phone marking attendance twice for the same session. The
// core never inspects it, only compares it.
//
// Derivation is User-Agent plus client IP, the same signal the original
// service keyed on. Devices behind one NAT running identical browser builds
// collide; that weakness is a known, accepted gap.
func DeviceFingerprint(c *gin.Context) string {
	rawUA := c.Request.UserAgent()
	parsed := ua.Parse(rawUA)

	seed := strings.Join([]string{
		parsed.Name,
		parsed.OS,
		fmt.Sprintf("%s/%s", parsed.Device, parsed.Version),
		rawUA,
		c.ClientIP(),
	}, "|")

	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// ParseUserAgent extracts a readable browser/OS/device triple from a
// User-Agent string, for logs and debugging.
func ParseUserAgent(userAgent string) (browser, os, device string) {
	if userAgent == "" {
		return "Unknown Browser", "Unknown OS", "Desktop"
	}

	parsed := ua.Parse(userAgent)

	browser = parsed.Name
	if browser == "" {
		browser = "Unknown Browser"
	}

	os = parsed.OS
	if os == "" {
		os = "Unknown OS"
	}

	device = "Desktop"
	if parsed.Mobile {
		device = "Mobile"
	} else if parsed.Tablet {
		device = "Tablet"
	}

	return strings.TrimSpace(browser), strings.TrimSpace(os), device
}
